package bomitem

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/partlane/partlane/pkg/serrors"
)

// ErrConflict surfaces a uniqueness or foreign-key violation raised at
// write time, after upstream validation has already passed.
var ErrConflict = serrors.NewError("BOM_ITEM_CONFLICT", "bom item conflicts with existing data", "")

// BomItem is one line of a parent assembly's bill of materials.
type BomItem struct {
	id           uint
	parentPartID uint
	subPartID    uint
	quantity     decimal.Decimal
	overage      string
	reference    string
	note         string
	createdAt    time.Time
	updatedAt    time.Time
}

type Option func(*BomItem)

func WithID(id uint) Option {
	return func(b *BomItem) {
		b.id = id
	}
}

func WithOverage(overage string) Option {
	return func(b *BomItem) {
		b.overage = overage
	}
}

func WithReference(reference string) Option {
	return func(b *BomItem) {
		b.reference = reference
	}
}

func WithNote(note string) Option {
	return func(b *BomItem) {
		b.note = note
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(b *BomItem) {
		b.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(b *BomItem) {
		b.updatedAt = updatedAt
	}
}

func New(parentPartID, subPartID uint, quantity decimal.Decimal, opts ...Option) *BomItem {
	b := &BomItem{
		parentPartID: parentPartID,
		subPartID:    subPartID,
		quantity:     quantity,
		createdAt:    time.Now(),
		updatedAt:    time.Now(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *BomItem) ID() uint                  { return b.id }
func (b *BomItem) ParentPartID() uint        { return b.parentPartID }
func (b *BomItem) SubPartID() uint           { return b.subPartID }
func (b *BomItem) Quantity() decimal.Decimal { return b.quantity }
func (b *BomItem) Overage() string           { return b.overage }
func (b *BomItem) Reference() string         { return b.reference }
func (b *BomItem) Note() string              { return b.note }
func (b *BomItem) CreatedAt() time.Time      { return b.createdAt }
func (b *BomItem) UpdatedAt() time.Time      { return b.updatedAt }

type Repository interface {
	GetByParent(ctx context.Context, parentPartID uint) ([]*BomItem, error)
	CountByParent(ctx context.Context, parentPartID uint) (int64, error)

	// ReplaceForParent deletes the parent's entire BOM and inserts the given
	// items. Callers are responsible for running it inside a transaction;
	// the repository locks the parent part row so replacements against the
	// same parent serialize.
	ReplaceForParent(ctx context.Context, parentPartID uint, items []*BomItem) error
}
