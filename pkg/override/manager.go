package override

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eowork/pmoprototype-sub005/pkg/util"
)

// Manager holds all page permission overrides in memory, hydrated from
// the store once at construction; every mutation synchronously rewrites
// the persisted snapshot
type Manager struct {
	// userIdentity -> override
	users  map[string]Override
	store  Store
	logger *zap.Logger
	sync.RWMutex
}

// NewManager initializes the override collection and hydrates it from the store
func NewManager(ctx context.Context, store Store) (*Manager, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize override manager logger: %s", err)
	}

	m := &Manager{
		users:  make(map[string]Override),
		store:  store,
		logger: logger,
	}

	records, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for _, o := range records {
		if err := o.Validate(); err != nil {
			return nil, err
		}

		m.users[o.UserIdentity] = o
	}

	return m, nil
}

// SetLogger assigns a logger for this manager
func (m *Manager) SetLogger(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	m.logger = logger.Named("[override]")

	return nil
}

// Logger returns the manager's logger, set at construction
func (m *Manager) Logger() *zap.Logger {
	return m.logger
}

// Set grants a user an explicit page allow-list. The operation is a
// full replace keyed by the user identity: a second call discards the
// first list entirely rather than merging with it. Admin enforcement
// belongs to the caller.
func (m *Manager) Set(ctx context.Context, userIdentity, userName, dept, role string, allowedPages []string, assignedBy string) (Override, error) {
	pages := make([]string, len(allowedPages))
	copy(pages, allowedPages)
	sort.Strings(pages)

	o := Override{
		UserIdentity: userIdentity,
		UserName:     userName,
		Department:   dept,
		Role:         role,
		AllowedPages: pages,
		AssignedBy:   assignedBy,
		AssignedAt:   time.Now(),
	}

	if err := o.Validate(); err != nil {
		return Override{}, err
	}

	m.Lock()
	defer m.Unlock()

	// an existing record for this user keeps its identity
	if existing, ok := m.users[userIdentity]; ok {
		o.ID = existing.ID
	} else {
		o.ID = util.NewULID()
	}

	m.users[userIdentity] = o

	m.flush(ctx)

	return o, nil
}

// Get returns the override of a given user
func (m *Manager) Get(userIdentity string) (Override, bool) {
	m.RLock()
	o, ok := m.users[userIdentity]
	m.RUnlock()

	return o, ok
}

// Remove revokes a user's override
func (m *Manager) Remove(ctx context.Context, userIdentity string) error {
	m.Lock()
	defer m.Unlock()

	if _, ok := m.users[userIdentity]; !ok {
		return ErrOverrideNotFound
	}

	delete(m.users, userIdentity)

	m.flush(ctx)

	return nil
}

// List returns every override, sorted by user identity
func (m *Manager) List() []Override {
	m.RLock()
	overrides := m.snapshot()
	m.RUnlock()

	sort.Slice(overrides, func(i, j int) bool {
		return overrides[i].UserIdentity < overrides[j].UserIdentity
	})

	return overrides
}

// snapshot collects all records; the caller must hold at least a read lock
func (m *Manager) snapshot() []Override {
	overrides := make([]Override, 0, len(m.users))
	for _, o := range m.users {
		overrides = append(overrides, o)
	}

	return overrides
}

// flush rewrites the persisted snapshot; the caller must hold the write
// lock. A write failure is logged and swallowed, leaving the in-memory
// state ahead of the durable copy.
func (m *Manager) flush(ctx context.Context) {
	if err := m.store.Save(ctx, m.snapshot()); err != nil {
		m.Logger().Error("failed to flush override snapshot", zap.Error(err))
	}
}
