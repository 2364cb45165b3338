package access

// ProjectScope is the set of projects a capability verdict extends to.
// Admin scope is the tagged All variant; everyone else gets an explicit
// subset, which may be empty. The tag exists so an empty subset can
// never be mistaken for unrestricted scope.
type ProjectScope struct {
	All bool     `json:"all"`
	IDs []string `json:"ids"`
}

// AllProjects returns the unrestricted scope
func AllProjects() ProjectScope {
	return ProjectScope{All: true}
}

// ProjectSubset returns a scope limited to the given project IDs
func ProjectSubset(ids []string) ProjectScope {
	if ids == nil {
		ids = make([]string, 0)
	}

	return ProjectScope{IDs: ids}
}

// Contains reports whether a project is within scope
func (s ProjectScope) Contains(projectID string) bool {
	if s.All {
		return true
	}

	for _, id := range s.IDs {
		if id == projectID {
			return true
		}
	}

	return false
}

// Capabilities is the category-level verdict shape: which actions the
// actor may take within a page category, and over which projects
type Capabilities struct {
	CanView            bool         `json:"can_view"`
	CanAdd             bool         `json:"can_add"`
	CanEdit            bool         `json:"can_edit"`
	CanDelete          bool         `json:"can_delete"`
	CanApprove         bool         `json:"can_approve"`
	CanAssignStaff     bool         `json:"can_assign_staff"`
	CanManageDocuments bool         `json:"can_manage_documents"`
	CanExportData      bool         `json:"can_export_data"`
	Projects           ProjectScope `json:"projects"`
}

// adminCapabilities is the unrestricted verdict
func adminCapabilities() Capabilities {
	return Capabilities{
		CanView:            true,
		CanAdd:             true,
		CanEdit:            true,
		CanDelete:          true,
		CanApprove:         true,
		CanAssignStaff:     true,
		CanManageDocuments: true,
		CanExportData:      true,
		Projects:           AllProjects(),
	}
}

// readOnlyCapabilities is the client-equivalent verdict: view and
// export only, no mutation of any kind
func readOnlyCapabilities() Capabilities {
	return Capabilities{
		CanView:       true,
		CanExportData: true,
		Projects:      ProjectSubset(nil),
	}
}
