package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/partlane/partlane/modules/catalog/domain/aggregates/part"
	"github.com/partlane/partlane/modules/catalog/presentation/controllers/dtos"
	"github.com/partlane/partlane/modules/catalog/presentation/mappers"
	"github.com/partlane/partlane/modules/catalog/presentation/viewmodels"
	"github.com/partlane/partlane/modules/catalog/services"
	"github.com/partlane/partlane/pkg/application"
	"github.com/partlane/partlane/pkg/constants"
	"github.com/partlane/partlane/pkg/httpapi"
)

type PartsController struct {
	app           application.Application
	partService   *services.PartService
	bomService    *services.BomService
	exportService *services.BomExportService
	basePath      string
}

func NewPartsController(app application.Application) application.Controller {
	return &PartsController{
		app:           app,
		partService:   app.Service(services.PartService{}).(*services.PartService),
		bomService:    app.Service(services.BomService{}).(*services.BomService),
		exportService: app.Service(services.BomExportService{}).(*services.BomExportService),
		basePath:      "/parts",
	}
}

func (c *PartsController) Key() string {
	return c.basePath
}

func (c *PartsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/bom/template", c.Template).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/bom", c.GetBom).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/bom/export", c.ExportBom).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/bom/validate", c.ValidateBom).Methods(http.MethodPost)
}

func (c *PartsController) List(w http.ResponseWriter, r *http.Request) {
	var dto dtos.PartFindDTO
	if err := constants.FormDecoder.Decode(&dto, r.URL.Query()); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "PART_BAD_QUERY", err.Error(), nil)
		return
	}

	parts, err := c.partService.GetPaginated(r.Context(), dto.ToParams())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "PART_LIST_FAILED", err.Error(), nil)
		return
	}
	out := make([]viewmodels.Part, 0, len(parts))
	for _, p := range parts {
		out = append(out, mappers.PartToViewModel(p))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

func (c *PartsController) Create(w http.ResponseWriter, r *http.Request) {
	var dto dtos.CreatePartDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	if fieldErrors, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "PART_BAD_REQUEST", "invalid request", fieldErrors)
		return
	}

	created, err := c.partService.Create(r.Context(), dto.ToEntity())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "PART_CREATE_FAILED", err.Error(), nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, mappers.PartToViewModel(created))
}

func (c *PartsController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parentID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "PART_BAD_ID", "invalid part id", nil)
		return
	}

	p, err := c.partService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, part.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "PART_NOT_FOUND", "part not found", nil)
			return
		}
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "PART_GET_FAILED", err.Error(), nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.PartToViewModel(p))
}

func (c *PartsController) GetBom(w http.ResponseWriter, r *http.Request) {
	id, ok := parentID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "PART_BAD_ID", "invalid part id", nil)
		return
	}
	if _, err := c.partService.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, part.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "PART_NOT_FOUND", "part not found", nil)
			return
		}
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "PART_GET_FAILED", err.Error(), nil)
		return
	}

	items, err := c.bomService.GetByParent(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "BOM_LIST_FAILED", err.Error(), nil)
		return
	}
	out := make([]viewmodels.BomItem, 0, len(items))
	for _, item := range items {
		subName := ""
		if sub, err := c.partService.GetByID(r.Context(), item.SubPartID()); err == nil {
			subName = sub.FullName()
		}
		out = append(out, mappers.BomItemToViewModel(item, subName))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

func (c *PartsController) ExportBom(w http.ResponseWriter, r *http.Request) {
	id, ok := parentID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "PART_BAD_ID", "invalid part id", nil)
		return
	}

	format := services.ExportFormat(r.URL.Query().Get("format"))
	data, filename, err := c.exportService.Export(r.Context(), id, format)
	if err != nil {
		if errors.Is(err, part.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "PART_NOT_FOUND", "part not found", nil)
			return
		}
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BOM_EXPORT_FAILED", err.Error(), nil)
		return
	}
	writeDownload(w, data, filename)
}

func (c *PartsController) Template(w http.ResponseWriter, r *http.Request) {
	format := services.ExportFormat(r.URL.Query().Get("format"))
	data, filename, err := c.exportService.Template(format)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BOM_TEMPLATE_FAILED", err.Error(), nil)
		return
	}
	writeDownload(w, data, filename)
}

func (c *PartsController) ValidateBom(w http.ResponseWriter, r *http.Request) {
	id, ok := parentID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "PART_BAD_ID", "invalid part id", nil)
		return
	}
	if _, err := c.partService.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, part.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "PART_NOT_FOUND", "part not found", nil)
			return
		}
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "PART_GET_FAILED", err.Error(), nil)
		return
	}

	if err := c.partService.ValidateBom(r.Context(), id); err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "BOM_VALIDATE_FAILED", err.Error(), nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeDownload(w http.ResponseWriter, data []byte, filename string) {
	contentType := "text/csv"
	if strings.HasSuffix(filename, ".xlsx") {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
