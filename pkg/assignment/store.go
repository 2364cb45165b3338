package assignment

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// json codec used for persisted snapshots
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// snapshotVersion is written into every persisted blob; load rejects
// blobs written by a newer code revision
const snapshotVersion = 1

// Store is a storage contract interface for the assignment ledger.
// The ledger persists as one snapshot: Load hydrates the full record
// set once at startup and Save rewrites it after every mutation.
type Store interface {
	Load(ctx context.Context) ([]Assignment, error)
	Save(ctx context.Context, assignments []Assignment) error
}

// snapshot is the persisted envelope for the assignment ledger
type snapshot struct {
	Version int          `json:"version"`
	Records []Assignment `json:"records"`
}

// encodeSnapshot serializes the full record set into a versioned blob
func encodeSnapshot(assignments []Assignment) ([]byte, error) {
	payload, err := json.Marshal(snapshot{
		Version: snapshotVersion,
		Records: assignments,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize assignment snapshot")
	}

	return payload, nil
}

// decodeSnapshot deserializes a persisted blob; a nil blob is an empty ledger
func decodeSnapshot(payload []byte) ([]Assignment, error) {
	if len(payload) == 0 {
		return make([]Assignment, 0), nil
	}

	s := snapshot{}
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, errors.Wrap(err, "failed to deserialize assignment snapshot")
	}

	if s.Version > snapshotVersion {
		return nil, errors.Wrapf(ErrSnapshotVersion, "snapshot version %d", s.Version)
	}

	if s.Records == nil {
		s.Records = make([]Assignment, 0)
	}

	return s.Records, nil
}
