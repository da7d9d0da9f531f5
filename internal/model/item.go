package model

import (
	"encoding/json"
	"fmt"
)

// LineItem is one serialized row of the transfer document, in the wire shape
// the preview and submit endpoints expect in the items_json field.
type LineItem struct {
	ProductName string  `json:"product_name"`
	KodeItem    string  `json:"kode_item"`
	Uom         string  `json:"uom"`
	Qty         float64 `json:"qty"`
	Harga       float64 `json:"harga"`
}

// IsComplete reports whether the item can be submitted: a product was chosen
// and a positive quantity entered.
func (i LineItem) IsComplete() bool {
	return i.ProductName != "" && i.Qty > 0
}

// IsEmpty reports whether the item carries no user input at all.
func (i LineItem) IsEmpty() bool {
	return i.ProductName == "" && i.Qty == 0
}

// MarshalItems encodes the ordered item list for the items_json form field.
func MarshalItems(items []LineItem) (string, error) {
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode items: %w", err)
	}
	return string(data), nil
}

// UnmarshalItems decodes an items_json value, as stored in drafts. An empty
// string decodes to no items.
func UnmarshalItems(itemsJSON string) ([]LineItem, error) {
	if itemsJSON == "" {
		return nil, nil
	}
	var items []LineItem
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}
