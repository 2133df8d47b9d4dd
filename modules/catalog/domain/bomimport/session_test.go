package bomimport_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partlane/partlane/modules/catalog/domain/bomimport"
)

func TestSessionBeginEmptyGrid(t *testing.T) {
	session := bomimport.NewSession(10, testAllowedSet())

	view := session.Begin(&bomimport.Grid{})

	assert.Equal(t, bomimport.StageSelectFile, view.Stage)
	assert.NotEmpty(t, view.FileError)
	assert.Empty(t, view.Rows)
}

func TestSessionBeginGuessesColumns(t *testing.T) {
	session := bomimport.NewSession(10, testAllowedSet())
	grid := &bomimport.Grid{
		Headers: []string{"Part_ID", "Qty", "RefDes", "Mystery"},
		Rows:    [][]string{{"1", "4", "R1", "x"}},
	}

	view := session.Begin(grid)

	assert.Equal(t, bomimport.StageSelectFields, view.Stage)
	require.Len(t, view.Mapping.Columns, 4)
	assert.Equal(t, bomimport.FieldPartID, view.Mapping.Columns[0].Field)
	assert.Equal(t, bomimport.FieldQuantity, view.Mapping.Columns[1].Field)
	assert.Equal(t, bomimport.FieldReference, view.Mapping.Columns[2].Field)
	assert.Equal(t, bomimport.Field(""), view.Mapping.Columns[3].Field)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, []string{"1", "4", "R1", "x"}, view.Rows[0].Cells)
}

func TestSessionFieldMappingInvalidStaysPut(t *testing.T) {
	session := bomimport.NewSession(10, testAllowedSet())
	view := session.Begin(&bomimport.Grid{
		Headers: []string{"Part_ID", "Qty"},
		Rows:    [][]string{{"1", "4"}},
	})

	// Drop the quantity assignment.
	view, err := session.SubmitFieldMapping(view, []bomimport.Field{bomimport.FieldPartID, ""})

	require.NoError(t, err)
	assert.Equal(t, bomimport.StageSelectFields, view.Stage)
	assert.Contains(t, view.Mapping.Missing, bomimport.FieldQuantity)
}

func TestSessionFullWorkflow(t *testing.T) {
	session := bomimport.NewSession(10, testAllowedSet())
	view := session.Begin(&bomimport.Grid{
		Headers: []string{"Part_ID", "Qty", "RefDes"},
		Rows: [][]string{
			{"1", "4", "R1,R2"},
			{"2", "1", "C1"},
		},
	})
	require.Equal(t, bomimport.StageSelectFields, view.Stage)

	view, err := session.SubmitFieldMapping(view, view.Mapping.Guesses())
	require.NoError(t, err)
	require.Equal(t, bomimport.StageSelectParts, view.Stage)
	require.NotNil(t, view.Rows[0].Part)
	require.NotNil(t, view.Rows[1].Part)

	valid, err := session.SubmitPartSelection(context.Background(), view, nil, noAncestors)
	require.NoError(t, err)
	require.True(t, valid)

	result := session.MarkCommitted(view)
	assert.Equal(t, bomimport.StageCommitted, view.Stage)
	assert.Equal(t, uint(10), result.ParentPartID)
	assert.Equal(t, 2, result.ItemCount)
}

func TestSessionEditFixesInvalidRow(t *testing.T) {
	session := bomimport.NewSession(10, testAllowedSet())
	view := session.Begin(&bomimport.Grid{
		Headers: []string{"Part_ID", "Qty"},
		Rows:    [][]string{{"1", "-1"}},
	})
	view, err := session.SubmitFieldMapping(view, view.Mapping.Guesses())
	require.NoError(t, err)

	valid, err := session.SubmitPartSelection(context.Background(), view, nil, noAncestors)
	require.NoError(t, err)
	require.False(t, valid)
	assert.Equal(t, bomimport.MsgNegativeQuantity, view.Rows[0].Errors["quantity"])

	edits := []bomimport.RowEdit{{RowIndex: 0, PartID: 1, Quantity: "2"}}
	valid, err = session.SubmitPartSelection(context.Background(), view, edits, noAncestors)
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Empty(t, view.Rows[0].Errors)
	assert.Equal(t, "2", view.Rows[0].Quantity.String())
}

func TestSessionEditClearsSelection(t *testing.T) {
	session := bomimport.NewSession(10, testAllowedSet())
	view := session.Begin(&bomimport.Grid{
		Headers: []string{"Part_ID", "Qty"},
		Rows:    [][]string{{"1", "2"}},
	})
	view, err := session.SubmitFieldMapping(view, view.Mapping.Guesses())
	require.NoError(t, err)

	edits := []bomimport.RowEdit{{RowIndex: 0, PartID: 0, Quantity: "2"}}
	valid, err := session.SubmitPartSelection(context.Background(), view, edits, noAncestors)

	require.NoError(t, err)
	assert.False(t, valid)
	assert.Equal(t, bomimport.MsgSelectPart, view.Rows[0].Errors["part"])
}

func TestSessionCommittedIsTerminal(t *testing.T) {
	session := bomimport.NewSession(10, testAllowedSet())
	view := session.Begin(&bomimport.Grid{
		Headers: []string{"Part_ID", "Qty"},
		Rows:    [][]string{{"1", "2"}},
	})
	view, err := session.SubmitFieldMapping(view, view.Mapping.Guesses())
	require.NoError(t, err)
	valid, err := session.SubmitPartSelection(context.Background(), view, nil, noAncestors)
	require.NoError(t, err)
	require.True(t, valid)
	session.MarkCommitted(view)

	_, err = session.SubmitFieldMapping(view, view.Mapping.Guesses())
	assert.ErrorIs(t, err, bomimport.ErrSessionCommitted)

	_, err = session.SubmitPartSelection(context.Background(), view, nil, noAncestors)
	assert.ErrorIs(t, err, bomimport.ErrSessionCommitted)
}
