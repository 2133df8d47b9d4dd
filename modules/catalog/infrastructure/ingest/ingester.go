package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"

	"github.com/partlane/partlane/modules/catalog/domain/bomimport"
)

// Ingester turns an uploaded file into a raw header+rows grid. Supported
// encodings: CSV, TSV and XLSX.
type Ingester interface {
	Parse(ctx context.Context, filename string, r io.Reader) (*bomimport.Grid, error)
}

func New() Ingester {
	return &tabularIngester{}
}

type tabularIngester struct{}

func (i *tabularIngester) Parse(ctx context.Context, filename string, r io.Reader) (*bomimport.Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(bomimport.ErrUnreadableFile, err.Error())
	}
	if len(data) == 0 {
		return nil, bomimport.ErrUnreadableFile
	}

	switch detectFormat(filename, data) {
	case formatXLSX:
		return parseXLSX(data)
	case formatTSV:
		return parseDelimited(data, '\t')
	default:
		return parseDelimited(data, ',')
	}
}

type format int

const (
	formatCSV format = iota
	formatTSV
	formatXLSX
)

// detectFormat prefers content sniffing and falls back to the file
// extension for text formats the sniffer reports generically.
func detectFormat(filename string, data []byte) format {
	kind := mimetype.Detect(data)
	switch {
	case kind.Is("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"):
		return formatXLSX
	case kind.Is("text/tab-separated-values"):
		return formatTSV
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return formatXLSX
	case ".tsv":
		return formatTSV
	}
	return formatCSV
}

func parseDelimited(data []byte, comma rune) (*bomimport.Grid, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(bomimport.ErrUnreadableFile, err.Error())
	}
	return gridFromRecords(records)
}

func gridFromRecords(records [][]string) (*bomimport.Grid, error) {
	if len(records) == 0 {
		return nil, bomimport.ErrNoData
	}

	headers := records[0]
	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if blankRow(record) {
			continue
		}
		// Pad short rows so every row lines up with the header columns.
		cells := make([]string, len(headers))
		copy(cells, record)
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return nil, bomimport.ErrNoData
	}
	return &bomimport.Grid{Headers: headers, Rows: rows}, nil
}

func blankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
