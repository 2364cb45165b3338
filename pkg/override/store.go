package override

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

// Store is a storage contract interface for page permission overrides,
// following the same snapshot discipline as the assignment ledger
type Store interface {
	Load(ctx context.Context) ([]Override, error)
	Save(ctx context.Context, overrides []Override) error
}

// snapshot is the persisted envelope for the override collection
type snapshot struct {
	Version int        `json:"version"`
	Records []Override `json:"records"`
}

func encodeSnapshot(overrides []Override) ([]byte, error) {
	payload, err := json.Marshal(snapshot{
		Version: snapshotVersion,
		Records: overrides,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize override snapshot")
	}

	return payload, nil
}

func decodeSnapshot(payload []byte) ([]Override, error) {
	if len(payload) == 0 {
		return make([]Override, 0), nil
	}

	s := snapshot{}
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, errors.Wrap(err, "failed to deserialize override snapshot")
	}

	if s.Version > snapshotVersion {
		return nil, errors.Wrapf(ErrSnapshotVersion, "snapshot version %d", s.Version)
	}

	if s.Records == nil {
		s.Records = make([]Override, 0)
	}

	return s.Records, nil
}
