package bomimport

// Column is one column of the uploaded file together with its semantic
// assignment state.
type Column struct {
	Index     int
	Header    string
	Field     Field // "" = unassigned
	Duplicate bool
}

// ColumnMapping is the outcome of classifying the user's column-to-field
// assignments. It is always produced, annotating problems instead of
// failing; only a Valid mapping lets the session advance.
type ColumnMapping struct {
	Columns []Column
	Missing []Field
}

// Classify builds a ColumnMapping from raw headers and the user's field
// guesses. guesses may be shorter than headers (absent entries count as
// unassigned) or longer (excess entries are ignored).
func Classify(headers []string, guesses []Field) ColumnMapping {
	if len(guesses) > len(headers) {
		guesses = guesses[:len(headers)]
	}

	counts := map[Field]int{}
	for _, g := range guesses {
		if g != "" {
			counts[g]++
		}
	}

	columns := make([]Column, len(headers))
	for i, header := range headers {
		var field Field
		if i < len(guesses) {
			field = guesses[i]
		}
		columns[i] = Column{
			Index:     i,
			Header:    header,
			Field:     field,
			Duplicate: field != "" && counts[field] > 1,
		}
	}

	var missing []Field
	for _, f := range requiredFields {
		if counts[f] == 0 {
			missing = append(missing, f)
		}
	}
	identityAssigned := false
	for _, f := range identityFields {
		if counts[f] > 0 {
			identityAssigned = true
			break
		}
	}
	if !identityAssigned {
		missing = append(missing, identityFields...)
	}

	return ColumnMapping{Columns: columns, Missing: missing}
}

func (m ColumnMapping) HasDuplicates() bool {
	for _, c := range m.Columns {
		if c.Duplicate {
			return true
		}
	}
	return false
}

func (m ColumnMapping) Valid() bool {
	return len(m.Missing) == 0 && !m.HasDuplicates()
}

// IndexOf returns the column index assigned to the given field, or -1.
func (m ColumnMapping) IndexOf(f Field) int {
	for _, c := range m.Columns {
		if c.Field == f {
			return c.Index
		}
	}
	return -1
}

// Headers returns the raw header names in column order.
func (m ColumnMapping) Headers() []string {
	out := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		out[i] = c.Header
	}
	return out
}

// Guesses returns the current field assignment per column.
func (m ColumnMapping) Guesses() []Field {
	out := make([]Field, len(m.Columns))
	for i, c := range m.Columns {
		out[i] = c.Field
	}
	return out
}
