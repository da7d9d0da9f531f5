package model

import "time"

// Draft is a locally saved form, exactly as the submit endpoint would receive
// it. Tag lists are stored pre-joined and the item rows pre-serialized so a
// draft can be replayed without the interactive session that produced it.
type Draft struct {
	UpdatedAt        time.Time
	ID               string
	NoForm           string
	Tanggal          string
	OutletPengirimID string
	OutletPengirim   string
	OutletPenerimaID string
	OutletPenerima   string
	DibuatOleh       string
	DisetujuiOleh    string
	DiterimaOleh     string
	ItemsJSON        string
	AttachmentPath   string
}
