package assignment

import (
	"errors"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/oklog/ulid"
)

// errors
var (
	ErrNilStore           = errors.New("assignment store is nil")
	ErrNilManager         = errors.New("assignment manager is nil")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrEmptyProjectID     = errors.New("project id is empty")
	ErrEmptyStaffIdentity = errors.New("staff identity is empty")
	ErrSnapshotVersion    = errors.New("unsupported assignment snapshot version")
)

// Permissions is the per-assignment capability tuple. It gates what an
// assigned staff member may do with the specific project record; page
// and category visibility is decided elsewhere.
type Permissions struct {
	CanEdit            bool `json:"can_edit"`
	CanDelete          bool `json:"can_delete"`
	CanViewDocuments   bool `json:"can_view_documents"`
	CanUploadDocuments bool `json:"can_upload_documents"`
}

// Assignment is a per-project, per-staff grant. A pair of
// (ProjectID, StaffIdentity) identifies at most one assignment;
// re-assigning the same pair replaces the tuple and metadata in place.
type Assignment struct {
	ID            ulid.ULID   `json:"id"`
	ProjectID     string      `json:"project_id" valid:"required"`
	ProjectTitle  string      `json:"project_title"`
	StaffIdentity string      `json:"staff_identity" valid:"required"`
	StaffName     string      `json:"staff_name"`
	AssignedBy    string      `json:"assigned_by"`
	AssignedAt    time.Time   `json:"assigned_at"`
	Permissions   Permissions `json:"permissions"`
}

// StringID returns short object info
func (a Assignment) StringID() string {
	return fmt.Sprintf("assignment(%s:%s)", a.ProjectID, a.StaffIdentity)
}

// Validate performs an assignment self-check
func (a Assignment) Validate() error {
	if a.ProjectID == "" {
		return ErrEmptyProjectID
	}

	if a.StaffIdentity == "" {
		return ErrEmptyStaffIdentity
	}

	if ok, err := govalidator.ValidateStruct(a); !ok || err != nil {
		return fmt.Errorf("%s validation failed: %s", a.StringID(), err)
	}

	return nil
}
