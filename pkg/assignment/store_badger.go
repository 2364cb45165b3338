package assignment

import (
	"context"

	"github.com/dgraph-io/badger"
)

// badgerSnapshotKey is the single key the ledger snapshot lives under
var badgerSnapshotKey = []byte("project_assignment_snapshot")

// badgerStore is an alternative embedded KV backend
type badgerStore struct {
	db *badger.DB
}

// NewBadgerStore initializing badger store
func NewBadgerStore(db *badger.DB) (Store, error) {
	if db == nil {
		return nil, ErrNilStore
	}

	return &badgerStore{db: db}, nil
}

// Load reads the ledger snapshot
func (s *badgerStore) Load(ctx context.Context) (assignments []Assignment, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerSnapshotKey)
		if err != nil {
			// a missing key is an empty ledger, not a failure
			if err == badger.ErrKeyNotFound {
				assignments = make([]Assignment, 0)
				return nil
			}

			return err
		}

		payload, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		assignments, err = decodeSnapshot(payload)

		return err
	})

	return assignments, err
}

// Save rewrites the ledger snapshot
func (s *badgerStore) Save(ctx context.Context, assignments []Assignment) error {
	payload, err := encodeSnapshot(assignments)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerSnapshotKey, payload)
	})
}
