package bomimport

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation messages surfaced per row/field.
const (
	MsgSelectPart       = "Select a part"
	MsgSelectValidPart  = "Select valid part"
	MsgCircularBom      = "Selected part creates a circular BOM"
	MsgDuplicatePart    = "Duplicate part selected"
	MsgSpecifyQuantity  = "Specify quantity"
	MsgInvalidQuantity  = "Enter a valid quantity"
	MsgNegativeQuantity = "Quantity must be greater than zero"
	MsgIntegerQuantity  = "Quantity must be integer value for trackable parts"
)

// AncestorFunc answers whether adding candidate under parent would close a
// cycle in the assembly graph. Backed by the catalog.
type AncestorFunc func(ctx context.Context, candidateID, parentID uint) (bool, error)

// ValidateRows checks every row immediately before a commit is attempted,
// accumulating all applicable errors per row instead of stopping at the
// first. It mutates only in-memory row state and reports whether the whole
// set is fit to commit. The returned error is reserved for catalog faults
// from the ancestor query.
func ValidateRows(ctx context.Context, parentID uint, rows []*Row, allowed *AllowedPartSet, isAncestor AncestorFunc) (bool, error) {
	seen := map[uint]bool{}
	valid := true

	for _, row := range rows {
		row.Errors = map[string]string{}

		if err := validatePart(ctx, parentID, row, allowed, isAncestor, seen); err != nil {
			return false, err
		}
		validateQuantity(row)

		if len(row.Errors) > 0 {
			valid = false
		}
	}
	return valid, nil
}

func validatePart(ctx context.Context, parentID uint, row *Row, allowed *AllowedPartSet, isAncestor AncestorFunc, seen map[uint]bool) error {
	if row.SelectedPartID == 0 {
		row.Part = nil
		row.addError("part", MsgSelectPart)
		return nil
	}

	p, ok := allowed.Resolve(row.SelectedPartID)
	if !ok {
		row.Part = nil
		row.addError("part", MsgSelectValidPart)
		return nil
	}
	row.Part = p

	circular, err := isAncestor(ctx, p.ID(), parentID)
	if err != nil {
		return err
	}
	if circular {
		row.addError("part", MsgCircularBom)
	}

	// Every occurrence after the first is flagged; the first stays clean.
	if seen[p.ID()] {
		row.addError("part", MsgDuplicatePart)
	}
	seen[p.ID()] = true
	return nil
}

func validateQuantity(row *Row) {
	raw := strings.TrimSpace(row.QuantityRaw)
	if raw == "" {
		row.addError("quantity", MsgSpecifyQuantity)
		return
	}

	q, err := decimal.NewFromString(raw)
	if err != nil {
		row.addError("quantity", MsgInvalidQuantity)
		return
	}
	row.Quantity = q

	if q.IsNegative() {
		row.addError("quantity", MsgNegativeQuantity)
		return
	}
	if row.Part != nil && row.Part.Trackable() && !q.IsInteger() {
		row.addError("quantity", MsgIntegerQuantity)
	}
}
