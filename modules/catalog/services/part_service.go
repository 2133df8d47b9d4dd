package services

import (
	"context"
	"time"

	"github.com/partlane/partlane/modules/catalog/domain/aggregates/part"
	"github.com/partlane/partlane/modules/catalog/domain/events"
	"github.com/partlane/partlane/pkg/eventbus"
)

type PartService struct {
	repo      part.Repository
	publisher eventbus.EventBus
}

func NewPartService(repo part.Repository, publisher eventbus.EventBus) *PartService {
	return &PartService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *PartService) GetByID(ctx context.Context, id uint) (*part.Part, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PartService) GetByIPN(ctx context.Context, ipn string) (*part.Part, error) {
	return s.repo.GetByIPN(ctx, ipn)
}

func (s *PartService) GetPaginated(ctx context.Context, params *part.FindParams) ([]*part.Part, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *PartService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *PartService) Create(ctx context.Context, p *part.Part) (*part.Part, error) {
	return s.repo.Create(ctx, p)
}

// ValidateBom marks the parent's current BOM as checked by a user. The flag
// is cleared again whenever an import replaces the BOM.
func (s *PartService) ValidateBom(ctx context.Context, parentID uint) error {
	if err := s.repo.SetBomValidated(ctx, parentID, true); err != nil {
		return err
	}
	s.publisher.Publish(&events.BomValidatedV1{
		ParentPartID: parentID,
		ValidatedAt:  time.Now(),
	})
	return nil
}
