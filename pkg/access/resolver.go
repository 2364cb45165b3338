package access

import (
	"github.com/eowork/pmoprototype-sub005/pkg/assignment"
	"github.com/eowork/pmoprototype-sub005/pkg/department"
	"github.com/eowork/pmoprototype-sub005/pkg/override"
)

// AssignmentDirectory is the slice of the assignment ledger the
// resolver reads from
type AssignmentDirectory interface {
	Get(projectID, staffIdentity string) (assignment.Assignment, bool)
	ProjectsAssignedTo(staffIdentity string) []assignment.Assignment
}

// OverrideDirectory is the slice of the override collection the
// resolver reads from
type OverrideDirectory interface {
	Get(userIdentity string) (override.Override, bool)
}

// Resolver combines the three authorization layers into one decision
// component: the coarse role tier, the department-to-category defaults
// and the explicit per-user/per-project records. Every method is a pure
// function of current directory state, returns a value on any input and
// never performs I/O.
type Resolver struct {
	departments *department.Table
	assignments AssignmentDirectory
	overrides   OverrideDirectory
}

// NewResolver initializes a resolver over the given directories
func NewResolver(departments *department.Table, assignments AssignmentDirectory, overrides OverrideDirectory) (*Resolver, error) {
	if departments == nil {
		return nil, ErrNilDepartmentTable
	}

	if assignments == nil {
		return nil, ErrNilAssignments
	}

	if overrides == nil {
		return nil, ErrNilOverrides
	}

	r := &Resolver{
		departments: departments,
		assignments: assignments,
		overrides:   overrides,
	}

	return r, nil
}

// CanAccessPage decides page visibility for an actor. Precedence, first
// match wins: admin and client see everything (client mutation is gated
// separately), then a present non-empty override decides by membership
// alone, then an unmapped or General department is let through, and
// only then the department allow-list decides.
func (r *Resolver) CanAccessPage(actor Actor, pageID string) bool {
	switch actor.Role {
	case RoleAdmin, RoleClient:
		return true
	}

	// a present-but-empty allow-list is "no override", not "deny all";
	// Allows is only consulted when the list actually holds pages
	if o, ok := r.overrides.Get(actor.Identity); ok && len(o.AllowedPages) > 0 {
		return o.Allows(pageID)
	}

	// absence of department configuration fails open on purpose: a new
	// or unmapped office must not be locked out of every page
	return r.departments.Allows(actor.Department, pageID)
}

// UserPermissions produces the category-level capability verdict for an
// actor. Staff and editors that may not reach the category at all are
// demoted to the client-equivalent read-only verdict.
func (r *Resolver) UserPermissions(actor Actor, category string) Capabilities {
	switch actor.Role {
	case RoleAdmin:
		return adminCapabilities()
	case RoleStaff, RoleEditor:
		// falls through to the assignment-scoped tier below
	default:
		// clients and anything unrecognized resolve to read-only
		return readOnlyCapabilities()
	}

	if !r.CanAccessPage(actor, category) {
		return readOnlyCapabilities()
	}

	assigned := r.assignments.ProjectsAssignedTo(actor.Identity)
	ids := make([]string, 0, len(assigned))
	for _, a := range assigned {
		ids = append(ids, a.ProjectID)
	}

	c := Capabilities{
		CanView: true,
		// staff may originate new projects even with zero assignments
		CanAdd:             true,
		CanEdit:            len(ids) > 0,
		CanManageDocuments: len(ids) > 0,
		CanExportData:      true,
		Projects:           ProjectSubset(ids),
	}

	// delete, approve and staff assignment stay admin-only at this tier

	return c
}

// CanViewProject decides record visibility: admins and clients see
// every project, everyone else only the projects they are assigned to
func (r *Resolver) CanViewProject(actor Actor, projectID string) bool {
	switch actor.Role {
	case RoleAdmin, RoleClient:
		return true
	}

	_, ok := r.assignments.Get(projectID, actor.Identity)

	return ok
}

// CanEditProject decides record-level edit: admin-only short-circuit,
// otherwise the assignment's own edit flag, defaulting to deny
func (r *Resolver) CanEditProject(actor Actor, projectID string) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleClient:
		return false
	}

	a, ok := r.assignments.Get(projectID, actor.Identity)

	return ok && a.Permissions.CanEdit
}

// CanDeleteProject decides record-level delete: admin-only
// short-circuit, otherwise the assignment's own delete flag,
// defaulting to deny
func (r *Resolver) CanDeleteProject(actor Actor, projectID string) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleClient:
		return false
	}

	a, ok := r.assignments.Get(projectID, actor.Identity)

	return ok && a.Permissions.CanDelete
}

// CanViewProjectDocuments decides document visibility on a record;
// unlike CanViewProject there is no client short-circuit, documents
// follow the assignment flag for everyone below admin
func (r *Resolver) CanViewProjectDocuments(actor Actor, projectID string) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleClient:
		return false
	}

	a, ok := r.assignments.Get(projectID, actor.Identity)

	return ok && a.Permissions.CanViewDocuments
}

// CanUploadProjectDocuments decides document upload on a record
func (r *Resolver) CanUploadProjectDocuments(actor Actor, projectID string) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleClient:
		return false
	}

	a, ok := r.assignments.Get(projectID, actor.Identity)

	return ok && a.Permissions.CanUploadDocuments
}
