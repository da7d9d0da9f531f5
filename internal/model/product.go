package model

// Product represents one entry of an outlet's product catalog as served by
// the products endpoint.
type Product struct {
	Name        string  `json:"name"`
	DefaultCode string  `json:"default_code"`
	UomName     string  `json:"uom_name"`
	Harga       float64 `json:"harga"`
}

// SearchFields returns the fields the product combobox matches against.
// Both the display name and the item code are searchable.
func (p Product) SearchFields() []string {
	return []string{p.Name, p.DefaultCode}
}
