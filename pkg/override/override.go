package override

import (
	"errors"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/oklog/ulid"
)

// errors
var (
	ErrNilStore          = errors.New("override store is nil")
	ErrOverrideNotFound  = errors.New("override not found")
	ErrEmptyUserIdentity = errors.New("user identity is empty")
	ErrSnapshotVersion   = errors.New("unsupported override snapshot version")
)

// Override is an explicit per-user page allow-list. While present with
// a non-empty list it supersedes the user's department defaults; an
// empty list carries no meaning and page decisions fall back to the
// department table. At most one override exists per user identity.
type Override struct {
	ID           ulid.ULID `json:"id"`
	UserIdentity string    `json:"user_identity" valid:"required"`
	UserName     string    `json:"user_name"`
	Department   string    `json:"department"`
	Role         string    `json:"role"`
	AllowedPages []string  `json:"allowed_pages"`
	AssignedBy   string    `json:"assigned_by"`
	AssignedAt   time.Time `json:"assigned_at"`
}

// StringID returns short object info
func (o Override) StringID() string {
	return fmt.Sprintf("override(%s)", o.UserIdentity)
}

// Allows reports whether the given page is a member of the allow-list
func (o Override) Allows(pageID string) bool {
	for _, p := range o.AllowedPages {
		if p == pageID {
			return true
		}
	}

	return false
}

// Validate performs an override self-check
func (o Override) Validate() error {
	if o.UserIdentity == "" {
		return ErrEmptyUserIdentity
	}

	if ok, err := govalidator.ValidateStruct(o); !ok || err != nil {
		return fmt.Errorf("%s validation failed: %s", o.StringID(), err)
	}

	return nil
}
