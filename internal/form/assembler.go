package form

import (
	"fmt"
	"strings"

	"github.com/hwgcc/mutasi-flow/internal/model"
	"github.com/hwgcc/mutasi-flow/internal/tags"
)

// DefaultMaxUploadMB is the attachment ceiling when none is configured.
const DefaultMaxUploadMB = 200

// ErrorCategory classifies a validation failure.
type ErrorCategory string

const (
	// CategoryRequired marks a missing required field.
	CategoryRequired ErrorCategory = "required"
	// CategoryOutletConflict marks source and destination being the same outlet.
	CategoryOutletConflict ErrorCategory = "outlet_conflict"
	// CategoryItems marks an empty or incomplete item list.
	CategoryItems ErrorCategory = "items"
	// CategoryAttachment marks an oversized attachment.
	CategoryAttachment ErrorCategory = "attachment"
)

// ValidationError is one user-facing validation failure.
type ValidationError struct {
	Category ErrorCategory
	Message  string
}

func (e ValidationError) Error() string { return e.Message }

// AggregateMessage joins the collected errors into the single message shown
// to the user.
func AggregateMessage(errs []ValidationError) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Input is everything the assembler reads: the header fields, the resolved
// outlet selections, the three tag collectors, the row list, and the
// optional attachment.
type Input struct {
	Dibuat         *tags.Collector
	Disetujui      *tags.Collector
	Diterima       *tags.Collector
	Rows           *RowList
	NoForm         string
	Tanggal        string
	SourceID       string
	SourceName     string
	DestID         string
	DestName       string
	AttachmentPath string
	AttachmentSize int64
}

// Payload is the serialized form, mirroring the multipart bodies of the
// preview and submit endpoints.
type Payload struct {
	NoForm           string
	Tanggal          string
	OutletPengirimID string
	OutletPenerimaID string
	DibuatOleh       string
	DisetujuiOleh    string
	DiterimaOleh     string
	ItemsJSON        string
	AttachmentPath   string
}

// Assembler validates form input and builds submission payloads.
type Assembler struct {
	MaxUploadMB int64
}

// NewAssembler creates an assembler with the given attachment ceiling in
// megabytes; zero or negative falls back to the default.
func NewAssembler(maxUploadMB int64) Assembler {
	if maxUploadMB <= 0 {
		maxUploadMB = DefaultMaxUploadMB
	}
	return Assembler{MaxUploadMB: maxUploadMB}
}

// Validate collects every business-rule violation. Submission is blocked
// unless the result is empty; no partial effects occur either way.
func (a Assembler) Validate(in Input) []ValidationError {
	var errs []ValidationError

	required := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, ValidationError{Category: CategoryRequired, Message: msg})
		}
	}

	required(strings.TrimSpace(in.NoForm) != "", "No Form wajib diisi")
	required(strings.TrimSpace(in.Tanggal) != "", "Tanggal kirim wajib diisi")
	required(in.SourceID != "", "Outlet pengirim wajib dipilih")
	required(in.DestID != "", "Outlet penerima wajib dipilih")
	required(in.Dibuat != nil && in.Dibuat.Len() > 0, "Dibuat oleh wajib diisi")
	required(in.Diterima != nil && in.Diterima.Len() > 0, "Diterima oleh wajib diisi")

	if in.SourceID != "" && in.SourceID == in.DestID {
		errs = append(errs, ValidationError{
			Category: CategoryOutletConflict,
			Message:  fmt.Sprintf("Outlet pengirim dan penerima tidak boleh sama (%s)", in.SourceName),
		})
	}

	errs = append(errs, a.validateItems(in.Rows)...)

	if in.AttachmentPath != "" && in.AttachmentSize > a.MaxUploadMB*1024*1024 {
		errs = append(errs, ValidationError{
			Category: CategoryAttachment,
			Message:  fmt.Sprintf("Ukuran file melebihi batas %d MB", a.MaxUploadMB),
		})
	}

	return errs
}

func (a Assembler) validateItems(rows *RowList) []ValidationError {
	if rows == nil || rows.Len() == 0 {
		return []ValidationError{{Category: CategoryItems, Message: "Minimal satu baris item harus diisi"}}
	}

	var errs []ValidationError
	complete := 0
	for i, item := range rows.Serialize() {
		switch {
		case item.IsComplete():
			complete++
		case item.IsEmpty():
			// Blank trailing rows are tolerated as long as one complete row exists.
		default:
			errs = append(errs, ValidationError{
				Category: CategoryItems,
				Message:  fmt.Sprintf("Baris item %d belum lengkap (nama produk dan kuantiti > 0)", i+1),
			})
		}
	}

	if complete == 0 {
		errs = append(errs, ValidationError{Category: CategoryItems, Message: "Minimal satu baris item harus diisi"})
	}
	return errs
}

// Assemble validates the input and, when clean, serializes it. The returned
// error list is the same one Validate produces; a non-empty list means no
// payload was built.
func (a Assembler) Assemble(in Input) (Payload, []ValidationError) {
	if errs := a.Validate(in); len(errs) > 0 {
		return Payload{}, errs
	}

	items := make([]model.LineItem, 0, in.Rows.Len())
	for _, item := range in.Rows.Serialize() {
		if item.IsComplete() {
			items = append(items, item)
		}
	}
	itemsJSON, err := model.MarshalItems(items)
	if err != nil {
		return Payload{}, []ValidationError{{Category: CategoryItems, Message: err.Error()}}
	}

	return Payload{
		NoForm:           strings.TrimSpace(in.NoForm),
		Tanggal:          in.Tanggal,
		OutletPengirimID: in.SourceID,
		OutletPenerimaID: in.DestID,
		DibuatOleh:       in.Dibuat.Serialize(),
		DisetujuiOleh:    serializeOptional(in.Disetujui),
		DiterimaOleh:     in.Diterima.Serialize(),
		ItemsJSON:        itemsJSON,
		AttachmentPath:   in.AttachmentPath,
	}, nil
}

// PayloadFromDraft rebuilds a payload from a saved draft for non-interactive
// submission.
func PayloadFromDraft(d model.Draft) Payload {
	return Payload{
		NoForm:           d.NoForm,
		Tanggal:          d.Tanggal,
		OutletPengirimID: d.OutletPengirimID,
		OutletPenerimaID: d.OutletPenerimaID,
		DibuatOleh:       d.DibuatOleh,
		DisetujuiOleh:    d.DisetujuiOleh,
		DiterimaOleh:     d.DiterimaOleh,
		ItemsJSON:        d.ItemsJSON,
		AttachmentPath:   d.AttachmentPath,
	}
}

func serializeOptional(c *tags.Collector) string {
	if c == nil {
		return ""
	}
	return c.Serialize()
}
