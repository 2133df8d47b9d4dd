package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partlane/partlane/modules/catalog/domain/aggregates/part"
	"github.com/partlane/partlane/modules/catalog/domain/bomimport"
	"github.com/partlane/partlane/modules/catalog/infrastructure/ingest"
	"github.com/partlane/partlane/modules/catalog/services"
	"github.com/partlane/partlane/pkg/composables"
)

func importFixture() (*services.BomImportService, *inMemoryBomItemRepository) {
	items := newInMemoryBomItemRepository()
	parts := &inMemoryPartRepository{
		parts: []*part.Part{
			part.New("Widget", part.WithID(10), part.WithAssembly(true)),
			part.New("Resistor 10k", part.WithID(1), part.WithIPN("R-10K")),
			part.New("Capacitor 100n", part.WithID(2), part.WithIPN("C-100N")),
		},
		items: items,
	}
	bomService := services.NewBomService(parts, items, quietPublisher(), services.WithTxRunner(passthroughTx))
	return services.NewBomImportService(parts, bomService, ingest.New()), items
}

func importCtx() context.Context {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return composables.WithLogger(context.Background(), logrus.NewEntry(log))
}

func TestBeginImportUnknownParent(t *testing.T) {
	svc, _ := importFixture()

	_, err := svc.BeginImport(importCtx(), 99, "bom.csv", strings.NewReader("Part_ID,Quantity\n1,2\n"))

	assert.ErrorIs(t, err, part.ErrNotFound)
}

func TestBeginImportUnreadableFileStaysAtFileSelection(t *testing.T) {
	svc, _ := importFixture()

	view, err := svc.BeginImport(importCtx(), 10, "bom.csv", strings.NewReader(""))

	require.NoError(t, err)
	assert.Equal(t, bomimport.StageSelectFile, view.Stage)
	assert.NotEmpty(t, view.FileError)
}

func TestBeginImportAdvancesToFieldSelection(t *testing.T) {
	svc, _ := importFixture()

	view, err := svc.BeginImport(importCtx(), 10, "bom.csv", strings.NewReader("Part_ID,Qty\n1,2\n2,1\n"))

	require.NoError(t, err)
	assert.Equal(t, bomimport.StageSelectFields, view.Stage)
	require.Len(t, view.Rows, 2)
	assert.Equal(t, bomimport.FieldPartID, view.Mapping.Columns[0].Field)
	assert.Equal(t, bomimport.FieldQuantity, view.Mapping.Columns[1].Field)
}

func TestSubmitFieldMappingMatchesRows(t *testing.T) {
	svc, _ := importFixture()
	view, err := svc.BeginImport(importCtx(), 10, "bom.csv", strings.NewReader("Part_ID,Qty\n1,2\n"))
	require.NoError(t, err)

	view, err = svc.SubmitFieldMapping(importCtx(), view, view.Mapping.Guesses())

	require.NoError(t, err)
	assert.Equal(t, bomimport.StageSelectParts, view.Stage)
	require.NotNil(t, view.Rows[0].Part)
	assert.Equal(t, uint(1), view.Rows[0].Part.ID())
}

func TestSubmitPartSelectionReportsInvalidRows(t *testing.T) {
	svc, _ := importFixture()
	view, err := svc.BeginImport(importCtx(), 10, "bom.csv", strings.NewReader("Part_ID,Qty\n1,-1\n"))
	require.NoError(t, err)
	view, err = svc.SubmitFieldMapping(importCtx(), view, view.Mapping.Guesses())
	require.NoError(t, err)

	out, result, err := svc.SubmitPartSelection(importCtx(), view, nil)

	require.NoError(t, err)
	assert.Nil(t, result, "invalid rows must not commit")
	assert.Equal(t, bomimport.StageSelectParts, out.Stage)
	assert.Equal(t, bomimport.MsgNegativeQuantity, out.Rows[0].Errors["quantity"])
}

func TestSubmitPartSelectionCommitsValidRows(t *testing.T) {
	svc, items := importFixture()
	view, err := svc.BeginImport(importCtx(), 10, "bom.csv", strings.NewReader("Part_ID,Qty\n1,4\n2,1\n"))
	require.NoError(t, err)
	view, err = svc.SubmitFieldMapping(importCtx(), view, view.Mapping.Guesses())
	require.NoError(t, err)

	out, result, err := svc.SubmitPartSelection(importCtx(), view, nil)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, uint(10), result.ParentPartID)
	assert.Equal(t, 2, result.ItemCount)
	assert.Equal(t, bomimport.StageCommitted, out.Stage)

	stored := items.byParent[10]
	require.Len(t, stored, 2)
	assert.Equal(t, uint(1), stored[0].SubPartID())
	assert.Equal(t, "4", stored[0].Quantity().String())
	assert.Equal(t, uint(2), stored[1].SubPartID())
}

func TestSubmitPartSelectionCommitFailureKeepsSessionOpen(t *testing.T) {
	svc, items := importFixture()
	view, err := svc.BeginImport(importCtx(), 10, "bom.csv", strings.NewReader("Part_ID,Qty\n1,4\n"))
	require.NoError(t, err)
	view, err = svc.SubmitFieldMapping(importCtx(), view, view.Mapping.Guesses())
	require.NoError(t, err)

	items.replaceErr = errors.New("deadlock detected")
	out, result, err := svc.SubmitPartSelection(importCtx(), view, nil)

	require.ErrorIs(t, err, items.replaceErr)
	assert.Nil(t, result)
	assert.Equal(t, bomimport.StageSelectParts, out.Stage, "a failed commit leaves the session retryable")
	assert.Empty(t, items.byParent[10])
}

// The parent itself never appears in the allowed set, so a row pointing back
// at the assembly is rejected as an invalid selection.
func TestSubmitPartSelectionRejectsParentAsComponent(t *testing.T) {
	svc, _ := importFixture()
	view, err := svc.BeginImport(importCtx(), 10, "bom.csv", strings.NewReader("Part_ID,Qty\n10,1\n"))
	require.NoError(t, err)
	view, err = svc.SubmitFieldMapping(importCtx(), view, view.Mapping.Guesses())
	require.NoError(t, err)

	out, result, err := svc.SubmitPartSelection(importCtx(), view, nil)

	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, bomimport.MsgSelectPart, out.Rows[0].Errors["part"])
}
