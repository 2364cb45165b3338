package assignment

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

// bucket and key names for the bbolt backend
var (
	boltBucketName  = []byte("PROJECT_ASSIGNMENT")
	boltSnapshotKey = []byte("SNAPSHOT")
)

// boltStore is using bbolt (previously known as BoltDB)
type boltStore struct {
	db *bbolt.DB
}

// NewBoltStore initializing bbolt store
func NewBoltStore(db *bbolt.DB) (Store, error) {
	if db == nil {
		return nil, ErrNilStore
	}

	s := &boltStore{db: db}

	return s, s.Init()
}

// Init initializing the storage
func (s *boltStore) Init() error {
	// creating pre-defined bucket if it doesn't exist yet
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(boltBucketName); err != nil {
			return fmt.Errorf("Init() failed to create assignment bucket: %s", err)
		}

		return nil
	})
}

// Load reads the ledger snapshot
func (s *boltStore) Load(ctx context.Context) (assignments []Assignment, err error) {
	err = s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(boltBucketName)
		if b == nil {
			return fmt.Errorf("Load(): bucket %s not found", boltBucketName)
		}

		assignments, err = decodeSnapshot(b.Get(boltSnapshotKey))

		return err
	})

	return assignments, err
}

// Save rewrites the ledger snapshot
func (s *boltStore) Save(ctx context.Context, assignments []Assignment) error {
	payload, err := encodeSnapshot(assignments)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(boltBucketName)
		if b == nil {
			return fmt.Errorf("Save(): bucket %s not found", boltBucketName)
		}

		return b.Put(boltSnapshotKey, payload)
	})
}
