package override

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

// bucket and key names for the bbolt backend
var (
	boltBucketName  = []byte("PAGE_PERMISSION_OVERRIDE")
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
			return fmt.Errorf("Init() failed to create override bucket: %s", err)
		}

		return nil
	})
}

// Load reads the override snapshot
func (s *boltStore) Load(ctx context.Context) (overrides []Override, err error) {
	err = s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(boltBucketName)
		if b == nil {
			return fmt.Errorf("Load(): bucket %s not found", boltBucketName)
		}

		overrides, err = decodeSnapshot(b.Get(boltSnapshotKey))

		return err
	})

	return overrides, err
}

// Save rewrites the override snapshot
func (s *boltStore) Save(ctx context.Context, overrides []Override) error {
	payload, err := encodeSnapshot(overrides)
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
