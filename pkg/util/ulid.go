package util

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid"
)

// ulid.Monotonic readers are not safe for concurrent use
var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// NewULID returns a new ulid.ULID
func NewULID() ulid.ULID {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
}
