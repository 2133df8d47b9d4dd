package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/partlane/partlane/modules/catalog/domain/aggregates/part"
	"github.com/partlane/partlane/modules/catalog/domain/bomimport"
	"github.com/partlane/partlane/modules/catalog/domain/entities/bomitem"
	"github.com/partlane/partlane/modules/catalog/presentation/controllers/dtos"
	"github.com/partlane/partlane/modules/catalog/presentation/mappers"
	"github.com/partlane/partlane/modules/catalog/services"
	"github.com/partlane/partlane/pkg/application"
	"github.com/partlane/partlane/pkg/composables"
	"github.com/partlane/partlane/pkg/configuration"
	"github.com/partlane/partlane/pkg/httpapi"
)

// BomImportController exposes the three-step import workflow. Every step
// returns the full session state; the client round-trips it on the next
// call, so the server holds nothing between requests.
type BomImportController struct {
	app           application.Application
	importService *services.BomImportService
	basePath      string
}

func NewBomImportController(app application.Application) application.Controller {
	return &BomImportController{
		app:           app,
		importService: app.Service(services.BomImportService{}).(*services.BomImportService),
		basePath:      "/parts/{id:[0-9]+}/bom/import",
	}
}

func (c *BomImportController) Key() string {
	return c.basePath
}

func (c *BomImportController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.Upload).Methods(http.MethodPost)
	router.HandleFunc("/fields", c.Fields).Methods(http.MethodPost)
	router.HandleFunc("/parts", c.Parts).Methods(http.MethodPost)
}

func parentID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// Upload handles the select-file step: it parses the uploaded file and
// opens the session at field selection.
func (c *BomImportController) Upload(w http.ResponseWriter, r *http.Request) {
	id, ok := parentID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BOM_IMPORT_BAD_PART_ID", "invalid part id", nil)
		return
	}

	conf := configuration.Use()
	if err := r.ParseMultipartForm(conf.MaxUploadMemory); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BOM_IMPORT_BAD_UPLOAD", err.Error(), nil)
		return
	}
	file, header, err := r.FormFile("bom_file")
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BOM_IMPORT_NO_FILE", "No BOM file provided", nil)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			composables.UseLogger(r.Context()).WithError(err).Warn("failed to close uploaded file")
		}
	}()

	view, err := c.importService.BeginImport(r.Context(), id, header.Filename, file)
	if err != nil {
		c.writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.SessionToViewModel(view))
}

// Fields handles the select-fields step.
func (c *BomImportController) Fields(w http.ResponseWriter, r *http.Request) {
	id, ok := parentID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BOM_IMPORT_BAD_PART_ID", "invalid part id", nil)
		return
	}

	var dto dtos.BomImportFieldsDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	if fieldErrors, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BOM_IMPORT_BAD_REQUEST", "invalid request", fieldErrors)
		return
	}
	if dto.Session.ParentPartID != id {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BOM_IMPORT_PART_MISMATCH", "session does not belong to this part", nil)
		return
	}

	guesses := make([]bomimport.Field, len(dto.Guesses))
	for i, g := range dto.Guesses {
		guesses[i] = bomimport.ParseField(g)
	}

	view, err := c.importService.SubmitFieldMapping(r.Context(), mappers.SessionToDomain(dto.Session), guesses)
	if err != nil {
		c.writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.SessionToViewModel(view))
}

// Parts handles the select-parts step and, once every row validates,
// commits the replacement BOM.
func (c *BomImportController) Parts(w http.ResponseWriter, r *http.Request) {
	id, ok := parentID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BOM_IMPORT_BAD_PART_ID", "invalid part id", nil)
		return
	}

	var dto dtos.BomImportPartsDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	if fieldErrors, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BOM_IMPORT_BAD_REQUEST", "invalid request", fieldErrors)
		return
	}
	if dto.Session.ParentPartID != id {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BOM_IMPORT_PART_MISMATCH", "session does not belong to this part", nil)
		return
	}

	edits := make([]bomimport.RowEdit, len(dto.Edits))
	for i, e := range dto.Edits {
		edits[i] = bomimport.RowEdit{
			RowIndex:  e.RowIndex,
			PartID:    e.PartID,
			Quantity:  e.Quantity,
			Reference: e.Reference,
			Overage:   e.Overage,
			Note:      e.Note,
		}
	}

	view, result, err := c.importService.SubmitPartSelection(r.Context(), mappers.SessionToDomain(dto.Session), edits)
	if err != nil {
		if errors.Is(err, bomitem.ErrConflict) {
			// The transaction rolled back; the session stays at part
			// selection so the user can retry.
			_ = httpapi.WriteError(w, http.StatusConflict, "BOM_IMPORT_COMMIT_CONFLICT", err.Error(), nil)
			return
		}
		c.writeServiceError(w, err)
		return
	}
	if result != nil {
		_ = httpapi.WriteJSON(w, http.StatusOK, mappers.CommitResultToViewModel(result))
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.SessionToViewModel(view))
}

func (c *BomImportController) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, part.ErrNotFound):
		_ = httpapi.WriteError(w, http.StatusNotFound, "PART_NOT_FOUND", "part not found", nil)
	case errors.Is(err, bomimport.ErrSessionCommitted):
		_ = httpapi.WriteError(w, http.StatusConflict, "BOM_IMPORT_COMMITTED", "import session is already committed", nil)
	default:
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "BOM_IMPORT_INTERNAL", err.Error(), nil)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dto any) bool {
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BOM_IMPORT_BAD_JSON", err.Error(), nil)
		return false
	}
	return true
}
