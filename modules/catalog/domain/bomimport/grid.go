package bomimport

import "github.com/partlane/partlane/pkg/serrors"

var (
	ErrUnreadableFile = serrors.NewError("BOM_IMPORT_UNREADABLE_FILE", "uploaded file could not be read as tabular data", "")
	ErrNoData         = serrors.NewError("BOM_IMPORT_NO_DATA", "uploaded file contains no data rows", "")
)

// Grid is the raw tabular content of an uploaded BOM file: one header per
// column plus the data rows, exactly as the ingester produced them.
type Grid struct {
	Headers []string
	Rows    [][]string
}

func (g *Grid) Empty() bool {
	return g == nil || len(g.Headers) == 0 || len(g.Rows) == 0
}
