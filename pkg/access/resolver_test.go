package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eowork/pmoprototype-sub005/pkg/access"
	"github.com/eowork/pmoprototype-sub005/pkg/assignment"
	"github.com/eowork/pmoprototype-sub005/pkg/department"
	"github.com/eowork/pmoprototype-sub005/pkg/override"
)

func newTestResolver(t *testing.T) (*access.Resolver, *assignment.Manager, *override.Manager) {
	t.Helper()

	a := assert.New(t)
	ctx := context.Background()

	as, err := assignment.NewMemoryStore()
	a.NoError(err)

	assignments, err := assignment.NewManager(ctx, as)
	a.NoError(err)
	a.NotNil(assignments)

	os, err := override.NewMemoryStore()
	a.NoError(err)

	overrides, err := override.NewManager(ctx, os)
	a.NoError(err)
	a.NotNil(overrides)

	r, err := access.NewResolver(department.Default(), assignments, overrides)
	a.NoError(err)
	a.NotNil(r)

	return r, assignments, overrides
}

func TestNewResolver(t *testing.T) {
	a := assert.New(t)

	r, err := access.NewResolver(nil, nil, nil)
	a.Error(err)
	a.Nil(r)

	newTestResolver(t)
}

func TestAdminSupremacy(t *testing.T) {
	a := assert.New(t)
	r, _, _ := newTestResolver(t)

	admin := access.Actor{Identity: "u-admin", Role: access.RoleAdmin, Department: "Physical Plant Division"}

	// any page, any project, regardless of overrides or assignments
	a.True(r.CanAccessPage(admin, "gad-parity-report"))
	a.True(r.CanAccessPage(admin, "no-such-page"))
	a.True(r.CanViewProject(admin, "proj-1"))
	a.True(r.CanEditProject(admin, "proj-1"))
	a.True(r.CanDeleteProject(admin, "proj-1"))
	a.True(r.CanViewProjectDocuments(admin, "proj-1"))
	a.True(r.CanUploadProjectDocuments(admin, "proj-1"))

	caps := r.UserPermissions(admin, "construction-of-infrastructure")
	a.True(caps.CanView)
	a.True(caps.CanAdd)
	a.True(caps.CanEdit)
	a.True(caps.CanDelete)
	a.True(caps.CanApprove)
	a.True(caps.CanAssignStaff)
	a.True(caps.CanManageDocuments)
	a.True(caps.CanExportData)
	a.True(caps.Projects.All)
	a.True(caps.Projects.Contains("anything-at-all"))
}

func TestClientReadOnly(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	r, assignments, _ := newTestResolver(t)

	client := access.Actor{Identity: "u-client", Role: access.RoleClient, Department: "General"}

	// clients see every page and every project
	a.True(r.CanAccessPage(client, "construction-of-infrastructure"))
	a.True(r.CanViewProject(client, "proj-1"))

	// even an explicit assignment grants a client no mutation
	_, err := assignments.Assign(ctx, "proj-1", "Admin Building Retrofit", "u-client", "Client User", "u-admin",
		assignment.Permissions{CanEdit: true, CanDelete: true})
	a.NoError(err)

	a.False(r.CanEditProject(client, "proj-1"))
	a.False(r.CanDeleteProject(client, "proj-1"))

	caps := r.UserPermissions(client, "construction-of-infrastructure")
	a.True(caps.CanView)
	a.True(caps.CanExportData)
	a.False(caps.CanAdd)
	a.False(caps.CanEdit)
	a.False(caps.CanDelete)
	a.False(caps.CanApprove)
	a.False(caps.CanAssignStaff)
	a.False(caps.CanManageDocuments)
	a.False(caps.Projects.All)
	a.Empty(caps.Projects.IDs)
}

func TestAssignmentMonotonicity(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	r, assignments, _ := newTestResolver(t)

	staff := access.Actor{Identity: "u-staff", Role: access.RoleStaff, Department: "Engineering and Construction Office (ECO)"}

	a.False(r.CanViewProject(staff, "proj-1"))
	a.False(r.CanEditProject(staff, "proj-1"))

	_, err := assignments.Assign(ctx, "proj-1", "Covered Walkway Phase 2", "u-staff", "Staff User", "u-admin",
		assignment.Permissions{CanEdit: true})
	a.NoError(err)

	a.True(r.CanViewProject(staff, "proj-1"))
	a.True(r.CanEditProject(staff, "proj-1"))
	a.False(r.CanDeleteProject(staff, "proj-1"))

	a.NoError(assignments.Remove(ctx, "proj-1", "u-staff"))

	a.False(r.CanViewProject(staff, "proj-1"))
	a.False(r.CanEditProject(staff, "proj-1"))
}

func TestOverridePrecedence(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	r, _, overrides := newTestResolver(t)

	staff := access.Actor{Identity: "u-staff", Role: access.RoleStaff, Department: "Engineering and Construction Office (ECO)"}

	// department default applies while no override exists
	a.True(r.CanAccessPage(staff, "construction-of-infrastructure"))
	a.False(r.CanAccessPage(staff, "gad-parity-report"))

	// a non-empty override decides by membership alone, the department
	// allow-list no longer matters in either direction
	_, err := overrides.Set(ctx, "u-staff", "Staff User", staff.Department, "staff",
		[]string{"gad-parity-report"}, "u-admin")
	a.NoError(err)

	a.True(r.CanAccessPage(staff, "gad-parity-report"))
	a.False(r.CanAccessPage(staff, "construction-of-infrastructure"))

	// revoking the override restores department defaults
	a.NoError(overrides.Remove(ctx, "u-staff"))
	a.True(r.CanAccessPage(staff, "construction-of-infrastructure"))
	a.False(r.CanAccessPage(staff, "gad-parity-report"))
}

func TestEmptyOverrideListFallsThrough(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	r, _, overrides := newTestResolver(t)

	staff := access.Actor{Identity: "u-staff", Role: access.RoleStaff, Department: "Engineering and Construction Office (ECO)"}

	// a present-but-empty list is "no override", not "deny all"
	_, err := overrides.Set(ctx, "u-staff", "Staff User", staff.Department, "staff", nil, "u-admin")
	a.NoError(err)

	a.True(r.CanAccessPage(staff, "construction-of-infrastructure"))
	a.False(r.CanAccessPage(staff, "gad-parity-report"))
}

func TestDepartmentFallback(t *testing.T) {
	a := assert.New(t)
	r, _, _ := newTestResolver(t)

	// a department absent from the table is unrestricted
	unmapped := access.Actor{Identity: "u-new", Role: access.RoleStaff, Department: "Office of the Future"}
	a.True(r.CanAccessPage(unmapped, "construction-of-infrastructure"))
	a.True(r.CanAccessPage(unmapped, "gad-parity-report"))
	a.True(r.CanAccessPage(unmapped, "no-such-page"))

	// same for the literal General department
	general := access.Actor{Identity: "u-general", Role: access.RoleEditor, Department: department.General}
	a.True(r.CanAccessPage(general, "gad-parity-report"))
}

func TestStaffWithoutAssignments(t *testing.T) {
	a := assert.New(t)
	r, _, _ := newTestResolver(t)

	staff := access.Actor{Identity: "u-staff", Role: access.RoleStaff, Department: "Engineering and Construction Office (ECO)"}

	caps := r.UserPermissions(staff, "construction-of-infrastructure")
	a.True(caps.CanView)
	a.True(caps.CanAdd)
	a.False(caps.CanEdit)
	a.False(caps.CanManageDocuments)
	a.False(caps.CanDelete)
	a.False(caps.CanApprove)
	a.False(caps.Projects.All)
	a.Empty(caps.Projects.IDs)
}

func TestStaffWithAssignments(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	r, assignments, _ := newTestResolver(t)

	staff := access.Actor{Identity: "u-staff", Role: access.RoleStaff, Department: "Engineering and Construction Office (ECO)"}

	_, err := assignments.Assign(ctx, "proj-1", "Covered Walkway Phase 2", "u-staff", "Staff User", "u-admin",
		assignment.Permissions{CanEdit: true, CanViewDocuments: true})
	a.NoError(err)
	_, err = assignments.Assign(ctx, "proj-2", "Drainage Rehab", "u-staff", "Staff User", "u-admin",
		assignment.Permissions{})
	a.NoError(err)

	caps := r.UserPermissions(staff, "construction-of-infrastructure")
	a.True(caps.CanEdit)
	a.True(caps.CanManageDocuments)
	a.False(caps.Projects.All)
	a.Equal([]string{"proj-1", "proj-2"}, caps.Projects.IDs)
	a.True(caps.Projects.Contains("proj-1"))
	a.False(caps.Projects.Contains("proj-3"))

	// category the department cannot reach demotes staff to read-only
	caps = r.UserPermissions(staff, "gad-parity-report")
	a.True(caps.CanView)
	a.False(caps.CanAdd)
	a.False(caps.CanEdit)
	a.Empty(caps.Projects.IDs)
}

func TestPerFlagProjectVerdicts(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	r, assignments, _ := newTestResolver(t)

	staff := access.Actor{Identity: "u-staff", Role: access.RoleStaff, Department: "Engineering and Construction Office (ECO)"}

	_, err := assignments.Assign(ctx, "proj-1", "Covered Walkway Phase 2", "u-staff", "Staff User", "u-admin",
		assignment.Permissions{CanEdit: true, CanDelete: false, CanViewDocuments: true, CanUploadDocuments: false})
	a.NoError(err)

	a.True(r.CanEditProject(staff, "proj-1"))
	a.False(r.CanDeleteProject(staff, "proj-1"))
	a.True(r.CanViewProjectDocuments(staff, "proj-1"))
	a.False(r.CanUploadProjectDocuments(staff, "proj-1"))

	// unknown project resolves exactly like absence
	a.False(r.CanEditProject(staff, "no-such-project"))
	a.False(r.CanDeleteProject(staff, "no-such-project"))
}

func TestEditorBehavesLikeStaff(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	r, assignments, _ := newTestResolver(t)

	editor := access.Actor{Identity: "u-editor", Role: access.RoleEditor, Department: "Planning and Development Office (PDO)"}

	a.True(r.CanAccessPage(editor, "annual-procurement-plan"))
	a.False(r.CanAccessPage(editor, "gad-parity-report"))
	a.False(r.CanViewProject(editor, "proj-9"))

	_, err := assignments.Assign(ctx, "proj-9", "Land Use Survey", "u-editor", "Editor User", "u-admin",
		assignment.Permissions{CanEdit: true})
	a.NoError(err)

	a.True(r.CanViewProject(editor, "proj-9"))
	a.True(r.CanEditProject(editor, "proj-9"))
	a.False(r.CanDeleteProject(editor, "proj-9"))
}

func TestParseRole(t *testing.T) {
	a := assert.New(t)

	r, err := access.ParseRole("Admin")
	a.NoError(err)
	a.Equal(access.RoleAdmin, r)

	r, err = access.ParseRole("  staff ")
	a.NoError(err)
	a.Equal(access.RoleStaff, r)

	_, err = access.ParseRole("superuser")
	a.Equal(access.ErrUnknownRole, err)
}
