package model

// Outlet represents a selectable outlet from the master catalog.
type Outlet struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SearchFields returns the fields the outlet combobox matches against.
func (o Outlet) SearchFields() []string {
	return []string{o.Name}
}
