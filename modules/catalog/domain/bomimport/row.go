package bomimport

import (
	"github.com/shopspring/decimal"

	"github.com/partlane/partlane/modules/catalog/domain/aggregates/part"
)

// Candidate is one ranked part suggestion for a row. Rank is the fuzzy
// match distance against the row's name text: lower is closer, -1 means the
// name did not fuzzy-match at all (the part is still offered for manual
// selection).
type Candidate struct {
	Part *part.Part
	Rank int
}

// Row is one line of the uploaded file: immutable raw cells plus the
// resolution and validation state overlaid by later stages.
type Row struct {
	Index int
	Cells []string

	// Resolution state, filled by the matcher and user overrides.
	Part           *part.Part
	SelectedPartID uint
	Candidates     []Candidate

	Quantity    decimal.Decimal
	QuantityRaw string
	PartName    string
	PartIPN     string
	Reference   string
	Overage     string
	Note        string

	// Errors maps field name ("part", "quantity") to a user-facing message.
	Errors map[string]string
}

func (r *Row) cell(idx int) string {
	if idx < 0 || idx >= len(r.Cells) {
		return ""
	}
	return r.Cells[idx]
}

func (r *Row) addError(field, message string) {
	if r.Errors == nil {
		r.Errors = map[string]string{}
	}
	if _, exists := r.Errors[field]; !exists {
		r.Errors[field] = message
	}
}

// RowEdit carries the user's stage-three corrections for a single row.
type RowEdit struct {
	RowIndex  int
	PartID    uint // 0 clears the selection
	Quantity  string
	Reference string
	Overage   string
	Note      string
}
