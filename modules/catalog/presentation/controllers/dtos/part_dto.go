package dtos

import (
	"context"

	"github.com/partlane/partlane/modules/catalog/domain/aggregates/part"
)

// PartFindDTO is decoded from query parameters on the part listing route.
type PartFindDTO struct {
	Query  string `form:"query"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

func (dto *PartFindDTO) ToParams() *part.FindParams {
	limit := dto.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	offset := dto.Offset
	if offset < 0 {
		offset = 0
	}
	return &part.FindParams{
		Query:  dto.Query,
		Limit:  limit,
		Offset: offset,
	}
}

type CreatePartDTO struct {
	Name        string `json:"name" validate:"required"`
	IPN         string `json:"ipn"`
	Description string `json:"description"`
	Units       string `json:"units"`
	Trackable   bool   `json:"trackable"`
	Assembly    bool   `json:"assembly"`
	Component   bool   `json:"component"`
}

func (dto *CreatePartDTO) Ok(_ context.Context) (map[string]string, bool) {
	return validateStruct(dto)
}

func (dto *CreatePartDTO) ToEntity() *part.Part {
	return part.New(
		dto.Name,
		part.WithIPN(dto.IPN),
		part.WithDescription(dto.Description),
		part.WithUnits(dto.Units),
		part.WithTrackable(dto.Trackable),
		part.WithAssembly(dto.Assembly),
		part.WithComponent(dto.Component),
	)
}
