package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/partlane/partlane/modules/catalog/domain/aggregates/part"
	"github.com/partlane/partlane/modules/catalog/domain/entities/bomitem"
)

// TemplateHeaders are written to exports and empty upload templates. They
// match the importer's header auto-guesses, so an exported BOM can be
// re-imported without manual column mapping.
var TemplateHeaders = []string{"Part_ID", "Part_Name", "Part_IPN", "Quantity", "Reference", "Overage", "Note"}

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

type BomExportService struct {
	parts part.Repository
	items bomitem.Repository
}

func NewBomExportService(parts part.Repository, items bomitem.Repository) *BomExportService {
	return &BomExportService{
		parts: parts,
		items: items,
	}
}

// Export streams the parent's current BOM in the requested format.
func (s *BomExportService) Export(ctx context.Context, parentID uint, format ExportFormat) ([]byte, string, error) {
	parent, err := s.parts.GetByID(ctx, parentID)
	if err != nil {
		return nil, "", err
	}
	items, err := s.items.GetByParent(ctx, parentID)
	if err != nil {
		return nil, "", err
	}

	records := make([][]string, 0, len(items)+1)
	records = append(records, TemplateHeaders)
	for _, item := range items {
		sub, err := s.parts.GetByID(ctx, item.SubPartID())
		if err != nil {
			return nil, "", errors.Wrapf(err, "bom item %d references missing part %d", item.ID(), item.SubPartID())
		}
		records = append(records, []string{
			strconv.FormatUint(uint64(sub.ID()), 10),
			sub.Name(),
			sub.IPN(),
			item.Quantity().String(),
			item.Reference(),
			item.Overage(),
			item.Note(),
		})
	}

	filename := fmt.Sprintf("bom_%s.%s", sanitizeFilename(parent.Name()), format)
	data, err := encodeRecords(records, format)
	if err != nil {
		return nil, "", err
	}
	return data, filename, nil
}

// Template returns an empty header-only file for users starting a BOM from
// scratch.
func (s *BomExportService) Template(format ExportFormat) ([]byte, string, error) {
	data, err := encodeRecords([][]string{TemplateHeaders}, format)
	if err != nil {
		return nil, "", err
	}
	return data, "bom_template." + string(format), nil
}

func encodeRecords(records [][]string, format ExportFormat) ([]byte, error) {
	switch format {
	case FormatXLSX:
		return encodeXLSX(records)
	case FormatCSV, "":
		return encodeCSV(records)
	default:
		return nil, errors.Errorf("unsupported export format %q", format)
	}
}

func encodeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeXLSX(records [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(0)
	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ', r == '-', r == '_':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "part"
	}
	return string(out)
}
