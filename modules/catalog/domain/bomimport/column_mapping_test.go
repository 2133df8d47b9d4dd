package bomimport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partlane/partlane/modules/catalog/domain/bomimport"
)

func TestGuessField(t *testing.T) {
	cases := map[string]bomimport.Field{
		"Quantity":    bomimport.FieldQuantity,
		"QTY":         bomimport.FieldQuantity,
		"Part Number": bomimport.FieldPartIPN,
		"Ref-Des":     bomimport.FieldReference,
		"Notes":       bomimport.FieldNote,
		"Part_ID":     bomimport.FieldPartID,
		"Component":   bomimport.FieldPartName,
		"Mystery":     "",
	}
	for header, want := range cases {
		assert.Equal(t, want, bomimport.GuessField(header), "header %q", header)
	}
}

func TestParseField(t *testing.T) {
	assert.Equal(t, bomimport.FieldQuantity, bomimport.ParseField("quantity"))
	assert.Equal(t, bomimport.FieldPartIPN, bomimport.ParseField(" Part_IPN "))
	assert.Equal(t, bomimport.Field(""), bomimport.ParseField("bogus"))
	assert.Equal(t, bomimport.Field(""), bomimport.ParseField(""))
}

func TestClassifyValidMapping(t *testing.T) {
	headers := []string{"Part_ID", "Quantity", "Reference"}
	guesses := []bomimport.Field{bomimport.FieldPartID, bomimport.FieldQuantity, bomimport.FieldReference}

	mapping := bomimport.Classify(headers, guesses)

	require.True(t, mapping.Valid())
	assert.Empty(t, mapping.Missing)
	assert.False(t, mapping.HasDuplicates())
	assert.Equal(t, 1, mapping.IndexOf(bomimport.FieldQuantity))
	assert.Equal(t, -1, mapping.IndexOf(bomimport.FieldNote))
}

func TestClassifyMissingQuantity(t *testing.T) {
	headers := []string{"Part_ID", "Reference"}
	guesses := []bomimport.Field{bomimport.FieldPartID, bomimport.FieldReference}

	mapping := bomimport.Classify(headers, guesses)

	assert.False(t, mapping.Valid())
	assert.Contains(t, mapping.Missing, bomimport.FieldQuantity)
}

func TestClassifyMissingIdentity(t *testing.T) {
	headers := []string{"Quantity", "Note"}
	guesses := []bomimport.Field{bomimport.FieldQuantity, bomimport.FieldNote}

	mapping := bomimport.Classify(headers, guesses)

	assert.False(t, mapping.Valid())
	// Without any identity column the user is shown all three options.
	assert.Contains(t, mapping.Missing, bomimport.FieldPartID)
	assert.Contains(t, mapping.Missing, bomimport.FieldPartName)
	assert.Contains(t, mapping.Missing, bomimport.FieldPartIPN)
}

func TestClassifyDuplicateAssignment(t *testing.T) {
	headers := []string{"Qty A", "Qty B", "Part_ID"}
	guesses := []bomimport.Field{bomimport.FieldQuantity, bomimport.FieldQuantity, bomimport.FieldPartID}

	mapping := bomimport.Classify(headers, guesses)

	assert.False(t, mapping.Valid())
	assert.True(t, mapping.HasDuplicates())
	assert.True(t, mapping.Columns[0].Duplicate)
	assert.True(t, mapping.Columns[1].Duplicate)
	assert.False(t, mapping.Columns[2].Duplicate)
	assert.Empty(t, mapping.Missing)
}

func TestClassifyIgnoresExcessGuesses(t *testing.T) {
	headers := []string{"Part_ID", "Quantity"}
	// A stray extra guess must not count against the real columns.
	guesses := []bomimport.Field{bomimport.FieldPartID, bomimport.FieldQuantity, bomimport.FieldQuantity}

	mapping := bomimport.Classify(headers, guesses)

	require.True(t, mapping.Valid())
	assert.False(t, mapping.HasDuplicates())
	require.Len(t, mapping.Columns, 2)
}

func TestClassifyShortGuesses(t *testing.T) {
	headers := []string{"Part_ID", "Quantity", "Extra"}
	guesses := []bomimport.Field{bomimport.FieldPartID, bomimport.FieldQuantity}

	mapping := bomimport.Classify(headers, guesses)

	require.True(t, mapping.Valid())
	assert.Equal(t, bomimport.Field(""), mapping.Columns[2].Field)
}
