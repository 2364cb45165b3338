package assignment_test

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.etcd.io/bbolt"

	"github.com/eowork/pmoprototype-sub005/pkg/assignment"
	"github.com/eowork/pmoprototype-sub005/pkg/util"
)

func sampleAssignments() []assignment.Assignment {
	return []assignment.Assignment{
		{
			ID:            util.NewULID(),
			ProjectID:     "proj-1",
			ProjectTitle:  "Covered Walkway Phase 2",
			StaffIdentity: "u-staff",
			StaffName:     "Staff User",
			AssignedBy:    "u-admin",
			AssignedAt:    time.Now().UTC().Round(time.Millisecond),
			Permissions:   assignment.Permissions{CanEdit: true, CanViewDocuments: true},
		},
		{
			ID:            util.NewULID(),
			ProjectID:     "proj-2",
			ProjectTitle:  "Drainage Rehab",
			StaffIdentity: "u-editor",
			StaffName:     "Editor User",
			AssignedBy:    "u-admin",
			AssignedAt:    time.Now().UTC().Round(time.Millisecond),
			Permissions:   assignment.Permissions{CanUploadDocuments: true},
		},
	}
}

func testStoreRoundtrip(t *testing.T, s assignment.Store) {
	t.Helper()

	a := assert.New(t)
	ctx := context.Background()

	// a fresh store is an empty ledger
	got, err := s.Load(ctx)
	a.NoError(err)
	a.Empty(got)

	want := sampleAssignments()
	a.NoError(s.Save(ctx, want))

	got, err = s.Load(ctx)
	a.NoError(err)
	a.Len(got, 2)
	a.ElementsMatch(want, got)

	// saving again replaces, never appends
	a.NoError(s.Save(ctx, want[:1]))

	got, err = s.Load(ctx)
	a.NoError(err)
	a.Len(got, 1)
	a.Equal(want[0].ID, got[0].ID)
}

func TestMemoryStoreRoundtrip(t *testing.T) {
	a := assert.New(t)

	s, err := assignment.NewMemoryStore()
	a.NoError(err)

	testStoreRoundtrip(t, s)
}

func TestBoltStoreRoundtrip(t *testing.T) {
	a := assert.New(t)

	dir, err := ioutil.TempDir("", "assignment-bbolt")
	a.NoError(err)
	defer os.RemoveAll(dir)

	db, err := bbolt.Open(filepath.Join(dir, "test.dat"), 0600, nil)
	a.NoError(err)
	defer db.Close()

	s, err := assignment.NewBoltStore(db)
	a.NoError(err)
	a.NotNil(s)

	testStoreRoundtrip(t, s)
}

func TestBoltStoreRejectsNewerSnapshot(t *testing.T) {
	a := assert.New(t)

	dir, err := ioutil.TempDir("", "assignment-bbolt-version")
	a.NoError(err)
	defer os.RemoveAll(dir)

	db, err := bbolt.Open(filepath.Join(dir, "test.dat"), 0600, nil)
	a.NoError(err)
	defer db.Close()

	s, err := assignment.NewBoltStore(db)
	a.NoError(err)

	// a blob written by a newer code revision must not be loaded
	a.NoError(db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte("PROJECT_ASSIGNMENT")).
			Put([]byte("SNAPSHOT"), []byte(`{"version":2,"records":[]}`))
	}))

	got, err := s.Load(context.Background())
	a.Error(err)
	a.Equal(assignment.ErrSnapshotVersion, errors.Cause(err))
	a.Nil(got)
}

func TestBoltStoreNilDB(t *testing.T) {
	a := assert.New(t)

	s, err := assignment.NewBoltStore(nil)
	a.Equal(assignment.ErrNilStore, err)
	a.Nil(s)
}

func TestBadgerStoreRoundtrip(t *testing.T) {
	a := assert.New(t)

	dir, err := ioutil.TempDir("", "assignment-badger")
	a.NoError(err)
	defer os.RemoveAll(dir)

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	a.NoError(err)
	defer db.Close()

	s, err := assignment.NewBadgerStore(db)
	a.NoError(err)
	a.NotNil(s)

	testStoreRoundtrip(t, s)
}
