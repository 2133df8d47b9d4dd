package bomimport

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/shopspring/decimal"
)

// MatchRow resolves a raw row against the allowed part set using the active
// column mapping. Match strategies in priority order:
//
//  1. exact identifier match on the Part_ID column
//  2. unique case-insensitive match on the Part_IPN column
//  3. fuzzy ranking of the Part_Name column against each allowed part's
//     name and description
//
// A fuzzy result only populates the ranked candidate list; it never sets
// the resolved part, so name-only rows always require manual confirmation.
// MatchRow is pure over its inputs: it mutates only the row.
func MatchRow(row *Row, mapping ColumnMapping, allowed *AllowedPartSet) {
	row.Quantity = decimal.Zero
	if idx := mapping.IndexOf(FieldQuantity); idx >= 0 {
		raw := strings.TrimSpace(row.cell(idx))
		if q, err := decimal.NewFromString(raw); err == nil {
			row.Quantity = q
		}
	}
	row.QuantityRaw = row.Quantity.String()

	if idx := mapping.IndexOf(FieldReference); idx >= 0 {
		row.Reference = row.cell(idx)
	}
	if idx := mapping.IndexOf(FieldOverage); idx >= 0 {
		row.Overage = row.cell(idx)
	}
	if idx := mapping.IndexOf(FieldNote); idx >= 0 {
		row.Note = row.cell(idx)
	}

	row.Part = nil
	row.SelectedPartID = 0

	if idx := mapping.IndexOf(FieldPartID); idx >= 0 {
		raw := strings.TrimSpace(row.cell(idx))
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			if p, ok := allowed.Resolve(uint(id)); ok {
				row.Part = p
				row.SelectedPartID = p.ID()
			}
		}
	}

	if idx := mapping.IndexOf(FieldPartIPN); idx >= 0 {
		row.PartIPN = strings.TrimSpace(row.cell(idx))
		if row.Part == nil {
			if matches := allowed.ResolveIPN(row.PartIPN); len(matches) == 1 {
				row.Part = matches[0]
				row.SelectedPartID = matches[0].ID()
			}
		}
	}

	// Candidates are ranked even when an exact match already resolved the
	// row, so the user can still override the selection.
	if idx := mapping.IndexOf(FieldPartName); idx >= 0 {
		row.PartName = strings.TrimSpace(row.cell(idx))
		row.Candidates = rankCandidates(row.PartName, allowed)
	} else {
		row.Candidates = unrankedCandidates(allowed)
	}

	if row.Part != nil && row.SelectedPartID != 0 {
		ensureCandidate(row)
	}
}

func rankCandidates(name string, allowed *AllowedPartSet) []Candidate {
	parts := allowed.Parts()
	candidates := make([]Candidate, len(parts))
	for i, p := range parts {
		candidates[i] = Candidate{
			Part: p,
			Rank: fuzzy.RankMatchNormalizedFold(name, p.Name()+p.Description()),
		}
	}
	// Matched candidates first, closest distance first; unmatched keep
	// their catalog order at the tail.
	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := candidates[i].Rank, candidates[j].Rank
		if (ri < 0) != (rj < 0) {
			return ri >= 0
		}
		if ri < 0 {
			return false
		}
		return ri < rj
	})
	return candidates
}

func unrankedCandidates(allowed *AllowedPartSet) []Candidate {
	parts := allowed.Parts()
	candidates := make([]Candidate, len(parts))
	for i, p := range parts {
		candidates[i] = Candidate{Part: p, Rank: -1}
	}
	return candidates
}

// ensureCandidate keeps an exact match visible at the head of the
// suggestion list even if it did not fuzzy-match the name text.
func ensureCandidate(row *Row) {
	for i, c := range row.Candidates {
		if c.Part.ID() == row.SelectedPartID {
			if i != 0 {
				head := row.Candidates[i]
				copy(row.Candidates[1:i+1], row.Candidates[:i])
				row.Candidates[0] = head
			}
			return
		}
	}
	row.Candidates = append([]Candidate{{Part: row.Part, Rank: -1}}, row.Candidates...)
}
