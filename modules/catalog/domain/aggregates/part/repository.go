package part

import (
	"context"

	"github.com/partlane/partlane/pkg/serrors"
)

var ErrNotFound = serrors.NewError("PART_NOT_FOUND", "part not found", "")

type FindParams struct {
	Query  string
	Limit  int
	Offset int
}

type Repository interface {
	GetByID(ctx context.Context, id uint) (*Part, error)
	GetByIPN(ctx context.Context, ipn string) (*Part, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]*Part, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, p *Part) (*Part, error)
	SetBomValidated(ctx context.Context, id uint, validated bool) error

	// AllowedComponentsOf returns every active component part that may be
	// used in the BOM of the given parent: the parent itself and any part
	// whose own BOM already contains the parent (directly or transitively)
	// are excluded.
	AllowedComponentsOf(ctx context.Context, parentID uint) ([]*Part, error)

	// IsAncestor reports whether parent is reachable from candidate through
	// BOM edges (the candidate's components, recursively). Making such a
	// candidate a component of parent would close a cycle.
	IsAncestor(ctx context.Context, candidateID, parentID uint) (bool, error)
}
