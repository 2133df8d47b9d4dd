package services_test

import (
	"context"
	"strings"

	"github.com/partlane/partlane/modules/catalog/domain/aggregates/part"
	"github.com/partlane/partlane/modules/catalog/domain/entities/bomitem"
)

// inMemoryPartRepository backs service tests without a database. Ancestry is
// computed from the sibling item repository's current state.
type inMemoryPartRepository struct {
	parts        []*part.Part
	items        *inMemoryBomItemRepository
	bomValidated map[uint]bool
}

func (r *inMemoryPartRepository) GetByID(_ context.Context, id uint) (*part.Part, error) {
	for _, p := range r.parts {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, part.ErrNotFound
}

func (r *inMemoryPartRepository) GetByIPN(_ context.Context, ipn string) (*part.Part, error) {
	for _, p := range r.parts {
		if strings.EqualFold(p.IPN(), ipn) {
			return p, nil
		}
	}
	return nil, part.ErrNotFound
}

func (r *inMemoryPartRepository) GetPaginated(_ context.Context, params *part.FindParams) ([]*part.Part, error) {
	out := make([]*part.Part, 0, len(r.parts))
	for _, p := range r.parts {
		if params.Query == "" || strings.Contains(strings.ToLower(p.Name()), strings.ToLower(params.Query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *inMemoryPartRepository) Count(_ context.Context) (int64, error) {
	return int64(len(r.parts)), nil
}

func (r *inMemoryPartRepository) Create(_ context.Context, p *part.Part) (*part.Part, error) {
	r.parts = append(r.parts, p)
	return p, nil
}

func (r *inMemoryPartRepository) SetBomValidated(_ context.Context, id uint, validated bool) error {
	if r.bomValidated == nil {
		r.bomValidated = map[uint]bool{}
	}
	r.bomValidated[id] = validated
	return nil
}

func (r *inMemoryPartRepository) AllowedComponentsOf(ctx context.Context, parentID uint) ([]*part.Part, error) {
	var out []*part.Part
	for _, p := range r.parts {
		if p.ID() == parentID || !p.Component() || !p.Active() {
			continue
		}
		circular, err := r.IsAncestor(ctx, p.ID(), parentID)
		if err != nil {
			return nil, err
		}
		if !circular {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *inMemoryPartRepository) IsAncestor(ctx context.Context, candidateID, parentID uint) (bool, error) {
	if candidateID == parentID {
		return true, nil
	}
	if r.items == nil {
		return false, nil
	}
	items, err := r.items.GetByParent(ctx, candidateID)
	if err != nil {
		return false, err
	}
	for _, item := range items {
		circular, err := r.IsAncestor(ctx, item.SubPartID(), parentID)
		if err != nil {
			return false, err
		}
		if circular {
			return true, nil
		}
	}
	return false, nil
}

type inMemoryBomItemRepository struct {
	byParent   map[uint][]*bomitem.BomItem
	replaceErr error
}

func newInMemoryBomItemRepository() *inMemoryBomItemRepository {
	return &inMemoryBomItemRepository{byParent: map[uint][]*bomitem.BomItem{}}
}

func (r *inMemoryBomItemRepository) GetByParent(_ context.Context, parentPartID uint) ([]*bomitem.BomItem, error) {
	return r.byParent[parentPartID], nil
}

func (r *inMemoryBomItemRepository) CountByParent(_ context.Context, parentPartID uint) (int64, error) {
	return int64(len(r.byParent[parentPartID])), nil
}

func (r *inMemoryBomItemRepository) ReplaceForParent(_ context.Context, parentPartID uint, items []*bomitem.BomItem) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.byParent[parentPartID] = items
	return nil
}
