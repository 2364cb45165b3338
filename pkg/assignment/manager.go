package assignment

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eowork/pmoprototype-sub005/pkg/util"
)

// Manager is the project assignment ledger: the full record set lives
// in memory, hydrated from the store once at construction, and every
// mutation synchronously rewrites the persisted snapshot. With a single
// logical caller mutating at a time the mutex is only there to keep
// renderer reads consistent with an in-flight mutation.
type Manager struct {
	// projectID -> staffIdentity -> record
	projects map[string]map[string]Assignment
	store    Store
	logger   *zap.Logger
	sync.RWMutex
}

// NewManager initializes the ledger and hydrates it from the store
func NewManager(ctx context.Context, store Store) (*Manager, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize assignment manager logger: %s", err)
	}

	m := &Manager{
		projects: make(map[string]map[string]Assignment),
		store:    store,
		logger:   logger,
	}

	records, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for _, a := range records {
		if err := a.Validate(); err != nil {
			return nil, err
		}

		staff, ok := m.projects[a.ProjectID]
		if !ok {
			staff = make(map[string]Assignment)
			m.projects[a.ProjectID] = staff
		}

		staff[a.StaffIdentity] = a
	}

	return m, nil
}

// SetLogger assigns a logger for this manager
func (m *Manager) SetLogger(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	m.logger = logger.Named("[assignment]")

	return nil
}

// Logger returns the manager's logger, set at construction
func (m *Manager) Logger() *zap.Logger {
	return m.logger
}

// Assign grants a staff member a permission tuple on a project. The
// operation is an upsert keyed by (projectID, staffIdentity): assigning
// the same pair again replaces the tuple and metadata in place, keeping
// the original record ID. Admin enforcement belongs to the caller.
func (m *Manager) Assign(ctx context.Context, projectID, projectTitle, staffIdentity, staffName, assignedBy string, permissions Permissions) (Assignment, error) {
	a := Assignment{
		ProjectID:     projectID,
		ProjectTitle:  projectTitle,
		StaffIdentity: staffIdentity,
		StaffName:     staffName,
		AssignedBy:    assignedBy,
		AssignedAt:    time.Now(),
		Permissions:   permissions,
	}

	if err := a.Validate(); err != nil {
		return Assignment{}, err
	}

	m.Lock()
	defer m.Unlock()

	staff, ok := m.projects[projectID]
	if !ok {
		staff = make(map[string]Assignment)
		m.projects[projectID] = staff
	}

	// an existing record for this pair keeps its identity
	if existing, ok := staff[staffIdentity]; ok {
		a.ID = existing.ID
	} else {
		a.ID = util.NewULID()
	}

	staff[staffIdentity] = a

	m.flush(ctx)

	return a, nil
}

// Remove revokes a staff member's assignment on a project
func (m *Manager) Remove(ctx context.Context, projectID, staffIdentity string) error {
	m.Lock()
	defer m.Unlock()

	staff, ok := m.projects[projectID]
	if !ok {
		return ErrAssignmentNotFound
	}

	if _, ok = staff[staffIdentity]; !ok {
		return ErrAssignmentNotFound
	}

	delete(staff, staffIdentity)
	if len(staff) == 0 {
		delete(m.projects, projectID)
	}

	m.flush(ctx)

	return nil
}

// RemoveProject clears every assignment of a project; used when the
// project record itself is deleted
func (m *Manager) RemoveProject(ctx context.Context, projectID string) error {
	m.Lock()
	defer m.Unlock()

	if _, ok := m.projects[projectID]; !ok {
		return ErrAssignmentNotFound
	}

	delete(m.projects, projectID)

	m.flush(ctx)

	return nil
}

// Get returns the assignment of a given staff member on a given project
func (m *Manager) Get(projectID, staffIdentity string) (Assignment, bool) {
	m.RLock()
	defer m.RUnlock()

	staff, ok := m.projects[projectID]
	if !ok {
		return Assignment{}, false
	}

	a, ok := staff[staffIdentity]

	return a, ok
}

// StaffOnProject returns all assignments of a project
func (m *Manager) StaffOnProject(projectID string) []Assignment {
	m.RLock()
	defer m.RUnlock()

	assignments := make([]Assignment, 0, len(m.projects[projectID]))
	for _, a := range m.projects[projectID] {
		assignments = append(assignments, a)
	}

	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].StaffIdentity < assignments[j].StaffIdentity
	})

	return assignments
}

// ProjectsAssignedTo returns every assignment a staff member holds.
// This is a scan across all projects, which is fine at the ledger's
// actual scale of a few hundred records.
func (m *Manager) ProjectsAssignedTo(staffIdentity string) []Assignment {
	m.RLock()
	defer m.RUnlock()

	assignments := make([]Assignment, 0)
	for _, staff := range m.projects {
		if a, ok := staff[staffIdentity]; ok {
			assignments = append(assignments, a)
		}
	}

	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].ProjectID < assignments[j].ProjectID
	})

	return assignments
}

// List returns every assignment in the ledger
func (m *Manager) List() []Assignment {
	m.RLock()
	defer m.RUnlock()

	assignments := m.snapshot()

	sort.Slice(assignments, func(i, j int) bool {
		if assignments[i].ProjectID != assignments[j].ProjectID {
			return assignments[i].ProjectID < assignments[j].ProjectID
		}

		return assignments[i].StaffIdentity < assignments[j].StaffIdentity
	})

	return assignments
}

// snapshot collects all records; the caller must hold at least a read lock
func (m *Manager) snapshot() []Assignment {
	assignments := make([]Assignment, 0)
	for _, staff := range m.projects {
		for _, a := range staff {
			assignments = append(assignments, a)
		}
	}

	return assignments
}

// flush rewrites the persisted snapshot; the caller must hold the write
// lock. A write failure is logged and swallowed: the in-memory mutation
// stands and the durable copy goes stale until the next successful flush.
func (m *Manager) flush(ctx context.Context) {
	if err := m.store.Save(ctx, m.snapshot()); err != nil {
		m.Logger().Error("failed to flush assignment ledger", zap.Error(err))
	}
}
