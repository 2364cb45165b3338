package access

import (
	"errors"
	"strings"
)

// errors
var (
	ErrUnknownRole        = errors.New("unknown role")
	ErrNilDepartmentTable = errors.New("department table is nil")
	ErrNilAssignments     = errors.New("assignment directory is nil")
	ErrNilOverrides       = errors.New("override directory is nil")
)

// Role is the coarse authority tier of an actor. Admin is unrestricted
// and Client is strictly read-only; Staff and Editor are equivalent
// tiers whose record access comes from assignment, not rank.
type Role uint8

// closed role enumeration
const (
	RoleClient Role = iota + 1
	RoleEditor
	RoleStaff
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleStaff:
		return "staff"
	case RoleEditor:
		return "editor"
	case RoleClient:
		return "client"
	default:
		return "unknown role"
	}
}

// ParseRole resolves a role name to its enumeration value
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "staff":
		return RoleStaff, nil
	case "editor":
		return RoleEditor, nil
	case "client":
		return RoleClient, nil
	default:
		return 0, ErrUnknownRole
	}
}

// Actor is the per-call tuple a decision is made for; it is never persisted
type Actor struct {
	Identity   string `json:"identity"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
}
