package persistence

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/partlane/partlane/modules/catalog/domain/aggregates/part"
	"github.com/partlane/partlane/modules/catalog/domain/entities/bomitem"
	"github.com/partlane/partlane/modules/catalog/infrastructure/persistence/models"
)

func toDomainPart(row *models.Part) *part.Part {
	return part.New(
		row.Name,
		part.WithID(row.ID),
		part.WithIPN(row.IPN),
		part.WithDescription(row.Description),
		part.WithUnits(row.Units),
		part.WithTrackable(row.Trackable),
		part.WithAssembly(row.Assembly),
		part.WithComponent(row.Component),
		part.WithActive(row.Active),
		part.WithBomValidated(row.BomValidated),
		part.WithCreatedAt(row.CreatedAt),
		part.WithUpdatedAt(row.UpdatedAt),
	)
}

func toDomainBomItem(row *models.BomItem) (*bomitem.BomItem, error) {
	quantity, err := decimal.NewFromString(row.Quantity)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid quantity %q for bom item %d", row.Quantity, row.ID)
	}
	return bomitem.New(
		row.ParentPartID,
		row.SubPartID,
		quantity,
		bomitem.WithID(row.ID),
		bomitem.WithOverage(row.Overage),
		bomitem.WithReference(row.Reference),
		bomitem.WithNote(row.Note),
		bomitem.WithCreatedAt(row.CreatedAt),
		bomitem.WithUpdatedAt(row.UpdatedAt),
	), nil
}
