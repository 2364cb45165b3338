package department

import (
	"errors"
	"sort"
	"strings"
)

// errors
var (
	ErrEmptyDepartmentName = errors.New("department name is empty")
	ErrNoEntries           = errors.New("department table has no entries")
)

// General is the catch-all department for personnel that belong to no
// specific office. It is never present in the table and is always
// unrestricted.
const General = "General"

// Table maps an organizational office to the set of page categories it
// may reach by default. The mapping is organizational policy and is
// immutable for the lifetime of the process; there are deliberately no
// mutation operations on it.
type Table struct {
	entries map[string][]string
}

// NewTable initializes a table from the given department-to-category
// mapping. Category lists are copied and kept sorted.
func NewTable(entries map[string][]string) (*Table, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	t := &Table{
		entries: make(map[string][]string, len(entries)),
	}

	for name, categories := range entries {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, ErrEmptyDepartmentName
		}

		cs := make([]string, len(categories))
		copy(cs, categories)
		sort.Strings(cs)

		t.entries[name] = cs
	}

	return t, nil
}

// AllowedCategories returns the category allow-list for a department.
// The second return value reports whether the department is actually
// present in the table; an absent department carries no allow-list.
func (t *Table) AllowedCategories(name string) ([]string, bool) {
	categories, ok := t.entries[name]
	if !ok {
		return nil, false
	}

	cs := make([]string, len(categories))
	copy(cs, categories)

	return cs, true
}

// Unrestricted reports whether a department bypasses category gating
// entirely. The General department and any department missing from the
// table are unrestricted; absence of configuration must never lock an
// office out.
func (t *Table) Unrestricted(name string) bool {
	if name == General {
		return true
	}

	_, ok := t.entries[name]

	return !ok
}

// Allows reports whether a department may reach the given page category.
func (t *Table) Allows(name string, category string) bool {
	if t.Unrestricted(name) {
		return true
	}

	for _, c := range t.entries[name] {
		if c == category {
			return true
		}
	}

	return false
}

// Departments returns the sorted list of departments present in the table.
func (t *Table) Departments() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
