package services

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/partlane/partlane/modules/catalog/domain/aggregates/part"
	"github.com/partlane/partlane/modules/catalog/domain/bomimport"
	"github.com/partlane/partlane/modules/catalog/domain/entities/bomitem"
	"github.com/partlane/partlane/modules/catalog/domain/events"
	"github.com/partlane/partlane/pkg/composables"
	"github.com/partlane/partlane/pkg/eventbus"
	"github.com/partlane/partlane/pkg/metrics"
)

var ErrRowsNotValidated = errors.New("commit requires rows without validation errors")

// TxRunner executes fn inside a single transaction.
type TxRunner func(ctx context.Context, fn func(context.Context) error) error

// BomService owns the transactional replacement of a parent's component
// list. Replace is all-or-nothing: either every validated row is written
// and the previous BOM is gone, or the original BOM survives untouched.
type BomService struct {
	parts     part.Repository
	items     bomitem.Repository
	publisher eventbus.EventBus
	inTx      TxRunner
}

type BomServiceOption func(*BomService)

// WithTxRunner overrides how the commit transaction is run. Tests use it to
// exercise the commit path against in-memory repositories.
func WithTxRunner(run TxRunner) BomServiceOption {
	return func(s *BomService) {
		s.inTx = run
	}
}

func NewBomService(parts part.Repository, items bomitem.Repository, publisher eventbus.EventBus, opts ...BomServiceOption) *BomService {
	s := &BomService{
		parts:     parts,
		items:     items,
		publisher: publisher,
		inTx:      composables.InTx,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BomService) GetByParent(ctx context.Context, parentID uint) ([]*bomitem.BomItem, error) {
	return s.items.GetByParent(ctx, parentID)
}

// Commit replaces the parent's BOM with the given validated rows inside a
// single transaction. Rows still carrying errors are rejected outright.
func (s *BomService) Commit(ctx context.Context, parentID uint, rows []*bomimport.Row) error {
	items := make([]*bomitem.BomItem, 0, len(rows))
	for _, row := range rows {
		if len(row.Errors) > 0 || row.Part == nil {
			return errors.Wrapf(ErrRowsNotValidated, "row %d", row.Index)
		}
		items = append(items, bomitem.New(
			parentID,
			row.Part.ID(),
			row.Quantity,
			bomitem.WithOverage(row.Overage),
			bomitem.WithReference(row.Reference),
			bomitem.WithNote(row.Note),
		))
	}

	err := s.inTx(ctx, func(txCtx context.Context) error {
		if err := s.items.ReplaceForParent(txCtx, parentID, items); err != nil {
			return err
		}
		// A freshly imported BOM always needs re-validation.
		return s.parts.SetBomValidated(txCtx, parentID, false)
	})
	if err != nil {
		metrics.ImportCommitFailures.Inc()
		return err
	}

	metrics.ImportsCommitted.Inc()
	metrics.ImportRowsCommitted.Add(float64(len(items)))
	s.publisher.Publish(&events.BomReplacedV1{
		ParentPartID: parentID,
		ItemCount:    len(items),
		ReplacedAt:   time.Now(),
	})
	return nil
}
