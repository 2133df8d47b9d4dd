package dtos

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/partlane/partlane/modules/catalog/presentation/viewmodels"
	"github.com/partlane/partlane/pkg/constants"
)

// BomImportFieldsDTO is the payload of the field-selection step: the
// round-tripped session plus one field guess per column ("" = unassigned).
type BomImportFieldsDTO struct {
	Session *viewmodels.BomImportSession `json:"session" validate:"required"`
	Guesses []string                     `json:"guesses"`
}

// RowEditDTO carries the user's corrections for one row of the
// part-selection stage.
type RowEditDTO struct {
	RowIndex  int    `json:"rowIndex" validate:"gte=0"`
	PartID    uint   `json:"partId"`
	Quantity  string `json:"quantity"`
	Reference string `json:"reference"`
	Overage   string `json:"overage"`
	Note      string `json:"note"`
}

// BomImportPartsDTO is the payload of the part-selection step.
type BomImportPartsDTO struct {
	Session *viewmodels.BomImportSession `json:"session" validate:"required"`
	Edits   []RowEditDTO                 `json:"edits" validate:"dive"`
}

func (dto *BomImportFieldsDTO) Ok(_ context.Context) (map[string]string, bool) {
	return validateStruct(dto)
}

func (dto *BomImportPartsDTO) Ok(_ context.Context) (map[string]string, bool) {
	return validateStruct(dto)
}

func validateStruct(dto any) (map[string]string, bool) {
	errorMessages := map[string]string{}
	errs := constants.Validate.Struct(dto)
	if errs == nil {
		return errorMessages, true
	}
	for _, err := range errs.(validator.ValidationErrors) {
		errorMessages[err.Field()] = validationMessage(err)
	}
	return errorMessages, len(errorMessages) == 0
}

func validationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}
