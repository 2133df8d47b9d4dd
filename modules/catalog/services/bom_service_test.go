package services_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partlane/partlane/modules/catalog/domain/aggregates/part"
	"github.com/partlane/partlane/modules/catalog/domain/bomimport"
	"github.com/partlane/partlane/modules/catalog/domain/entities/bomitem"
	"github.com/partlane/partlane/modules/catalog/domain/events"
	"github.com/partlane/partlane/modules/catalog/services"
	"github.com/partlane/partlane/pkg/eventbus"
	"github.com/partlane/partlane/pkg/metrics"
)

func quietPublisher() eventbus.EventBus {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return eventbus.NewEventPublisher(log)
}

// passthroughTx stands in for the pool-backed transaction in tests.
func passthroughTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func TestCommitRejectsRowsWithErrors(t *testing.T) {
	items := newInMemoryBomItemRepository()
	parts := &inMemoryPartRepository{items: items}
	svc := services.NewBomService(parts, items, quietPublisher())

	rows := []*bomimport.Row{
		{
			Index:    0,
			Part:     part.New("Resistor", part.WithID(1)),
			Quantity: decimal.NewFromInt(2),
		},
		{
			Index:  1,
			Errors: map[string]string{"part": bomimport.MsgSelectPart},
		},
	}

	err := svc.Commit(context.Background(), 10, rows)

	assert.ErrorIs(t, err, services.ErrRowsNotValidated)
	count, _ := items.CountByParent(context.Background(), 10)
	assert.Zero(t, count, "nothing is written when any row is invalid")
}

func TestCommitRejectsUnresolvedRows(t *testing.T) {
	items := newInMemoryBomItemRepository()
	parts := &inMemoryPartRepository{items: items}
	svc := services.NewBomService(parts, items, quietPublisher())

	rows := []*bomimport.Row{
		{Index: 0, Quantity: decimal.NewFromInt(2)},
	}

	err := svc.Commit(context.Background(), 10, rows)

	assert.ErrorIs(t, err, services.ErrRowsNotValidated)
}

func TestCommitReplacesBomAndPublishes(t *testing.T) {
	items := newInMemoryBomItemRepository()
	parts := &inMemoryPartRepository{items: items}
	publisher := quietPublisher()
	var published []*events.BomReplacedV1
	publisher.Subscribe(func(e *events.BomReplacedV1) {
		published = append(published, e)
	})
	svc := services.NewBomService(parts, items, publisher, services.WithTxRunner(passthroughTx))

	committedBefore := testutil.ToFloat64(metrics.ImportsCommitted)
	rowsBefore := testutil.ToFloat64(metrics.ImportRowsCommitted)

	rows := []*bomimport.Row{
		{Index: 0, Part: part.New("Resistor", part.WithID(1)), Quantity: decimal.NewFromInt(4), Reference: "R1"},
		{Index: 1, Part: part.New("Capacitor", part.WithID(2)), Quantity: decimal.RequireFromString("0.5")},
	}

	err := svc.Commit(context.Background(), 10, rows)

	require.NoError(t, err)
	stored := items.byParent[10]
	require.Len(t, stored, 2)
	assert.Equal(t, uint(1), stored[0].SubPartID())
	assert.Equal(t, "4", stored[0].Quantity().String())
	assert.Equal(t, "R1", stored[0].Reference())
	assert.Equal(t, uint(2), stored[1].SubPartID())

	// A fresh import always leaves the BOM awaiting re-validation.
	assert.False(t, parts.bomValidated[10])

	require.Len(t, published, 1)
	assert.Equal(t, uint(10), published[0].ParentPartID)
	assert.Equal(t, 2, published[0].ItemCount)

	assert.Equal(t, committedBefore+1, testutil.ToFloat64(metrics.ImportsCommitted))
	assert.Equal(t, rowsBefore+2, testutil.ToFloat64(metrics.ImportRowsCommitted))
}

func TestCommitWriteFailureLeavesBomUntouched(t *testing.T) {
	items := newInMemoryBomItemRepository()
	existing := bomitem.New(10, 3, decimal.NewFromInt(1))
	items.byParent[10] = []*bomitem.BomItem{existing}
	items.replaceErr = errors.New("deadlock detected")

	parts := &inMemoryPartRepository{items: items}
	publisher := quietPublisher()
	var published []*events.BomReplacedV1
	publisher.Subscribe(func(e *events.BomReplacedV1) {
		published = append(published, e)
	})
	svc := services.NewBomService(parts, items, publisher, services.WithTxRunner(passthroughTx))

	failuresBefore := testutil.ToFloat64(metrics.ImportCommitFailures)

	rows := []*bomimport.Row{
		{Index: 0, Part: part.New("Resistor", part.WithID(1)), Quantity: decimal.NewFromInt(4)},
	}

	err := svc.Commit(context.Background(), 10, rows)

	require.ErrorIs(t, err, items.replaceErr)
	assert.Equal(t, []*bomitem.BomItem{existing}, items.byParent[10], "previous BOM survives a failed commit")
	assert.Empty(t, published, "no event on failure")
	assert.Equal(t, failuresBefore+1, testutil.ToFloat64(metrics.ImportCommitFailures))
}
