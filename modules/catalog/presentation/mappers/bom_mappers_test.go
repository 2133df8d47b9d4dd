package mappers_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partlane/partlane/modules/catalog/domain/aggregates/part"
	"github.com/partlane/partlane/modules/catalog/domain/bomimport"
	"github.com/partlane/partlane/modules/catalog/presentation/mappers"
	"github.com/partlane/partlane/modules/catalog/presentation/viewmodels"
)

func sessionView() *bomimport.SessionView {
	headers := []string{"Part_ID", "Qty"}
	guesses := []bomimport.Field{bomimport.FieldPartID, bomimport.FieldQuantity}
	return &bomimport.SessionView{
		ParentPartID: 10,
		Stage:        bomimport.StageSelectParts,
		Mapping:      bomimport.Classify(headers, guesses),
		Rows: []*bomimport.Row{
			{
				Index:          0,
				Cells:          []string{"1", "4"},
				Part:           part.New("Resistor 10k", part.WithID(1), part.WithIPN("R-10K")),
				SelectedPartID: 1,
				QuantityRaw:    "4",
				Reference:      "R1",
				Errors:         map[string]string{},
				Candidates: []bomimport.Candidate{
					{Part: part.New("Resistor 10k", part.WithID(1), part.WithIPN("R-10K")), Rank: 0},
				},
			},
		},
	}
}

// The session survives a JSON round trip through the client: what comes back
// rebuilds into the same engine state the next step needs.
func TestSessionRoundTrip(t *testing.T) {
	vm := mappers.SessionToViewModel(sessionView())

	data, err := json.Marshal(vm)
	require.NoError(t, err)
	var decoded viewmodels.BomImportSession
	require.NoError(t, json.Unmarshal(data, &decoded))

	view := mappers.SessionToDomain(&decoded)

	assert.Equal(t, uint(10), view.ParentPartID)
	assert.Equal(t, bomimport.StageSelectParts, view.Stage)
	assert.True(t, view.Mapping.Valid())
	assert.Equal(t, 0, view.Mapping.IndexOf(bomimport.FieldPartID))
	require.Len(t, view.Rows, 1)
	assert.Equal(t, uint(1), view.Rows[0].SelectedPartID)
	assert.Equal(t, "4", view.Rows[0].QuantityRaw)
	assert.Equal(t, "R1", view.Rows[0].Reference)
	assert.NotNil(t, view.Rows[0].Errors)
}

// Mapping validity is recomputed from the wire payload, so a tampered
// duplicate assignment cannot smuggle an invalid mapping past the engine.
func TestSessionToDomainRecomputesMapping(t *testing.T) {
	vm := &viewmodels.BomImportSession{
		ParentPartID: 10,
		Stage:        string(bomimport.StageSelectParts),
		Columns: []viewmodels.BomImportColumn{
			{Index: 0, Header: "A", Field: "Quantity"},
			{Index: 1, Header: "B", Field: "Quantity"},
		},
	}

	view := mappers.SessionToDomain(vm)

	assert.False(t, view.Mapping.Valid())
	assert.True(t, view.Mapping.HasDuplicates())
}

func TestSessionToViewModelCandidates(t *testing.T) {
	vm := mappers.SessionToViewModel(sessionView())

	require.Len(t, vm.Rows, 1)
	require.Len(t, vm.Rows[0].Candidates, 1)
	assert.Equal(t, uint(1), vm.Rows[0].Candidates[0].PartID)
	assert.Equal(t, "R-10K | Resistor 10k", vm.Rows[0].Candidates[0].Label)
}
