package department

// defaultEntries is the campus office-to-category mapping currently in
// force. Changing it is a code change on purpose: which office reaches
// which category is organizational policy, not runtime state.
var defaultEntries = map[string][]string{
	"Engineering and Construction Office (ECO)": {
		"construction-of-infrastructure",
		"repair-and-maintenance",
		"facility-assessment",
		"infrastructure-projects",
	},
	"Planning and Development Office (PDO)": {
		"infrastructure-projects",
		"facility-assessment",
		"annual-procurement-plan",
	},
	"Gender and Development (GAD) Office": {
		"gad-parity-report",
		"gad-accomplishments",
	},
	"Physical Plant Division": {
		"repair-and-maintenance",
		"facility-assessment",
		"equipment-inventory",
	},
	"Supply and Property Management Office": {
		"annual-procurement-plan",
		"equipment-inventory",
	},
}

// Default returns the table backed by the built-in campus office mapping.
func Default() *Table {
	t, err := NewTable(defaultEntries)
	if err != nil {
		// the built-in mapping is validated by tests and must construct
		panic(err)
	}

	return t
}
