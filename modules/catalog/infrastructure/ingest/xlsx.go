package ingest

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/partlane/partlane/modules/catalog/domain/bomimport"
)

// parseXLSX reads the first sheet of an XLSX workbook into a grid.
func parseXLSX(data []byte) (*bomimport.Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(bomimport.ErrUnreadableFile, err.Error())
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, bomimport.ErrNoData
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(bomimport.ErrUnreadableFile, err.Error())
	}
	return gridFromRecords(records)
}
