package mappers

import (
	"github.com/partlane/partlane/modules/catalog/domain/aggregates/part"
	"github.com/partlane/partlane/modules/catalog/domain/bomimport"
	"github.com/partlane/partlane/modules/catalog/domain/entities/bomitem"
	"github.com/partlane/partlane/modules/catalog/presentation/viewmodels"
)

func SessionToViewModel(view *bomimport.SessionView) *viewmodels.BomImportSession {
	vm := &viewmodels.BomImportSession{
		ParentPartID: view.ParentPartID,
		Stage:        string(view.Stage),
		FileError:    view.FileError,
		Columns:      make([]viewmodels.BomImportColumn, 0, len(view.Mapping.Columns)),
		Rows:         make([]viewmodels.BomImportRow, 0, len(view.Rows)),
	}
	for _, c := range view.Mapping.Columns {
		vm.Columns = append(vm.Columns, viewmodels.BomImportColumn{
			Index:     c.Index,
			Header:    c.Header,
			Field:     string(c.Field),
			Duplicate: c.Duplicate,
		})
	}
	for _, f := range view.Mapping.Missing {
		vm.MissingFields = append(vm.MissingFields, string(f))
	}
	for _, row := range view.Rows {
		vm.Rows = append(vm.Rows, rowToViewModel(row))
	}
	return vm
}

func rowToViewModel(row *bomimport.Row) viewmodels.BomImportRow {
	out := viewmodels.BomImportRow{
		Index:     row.Index,
		Cells:     row.Cells,
		PartID:    row.SelectedPartID,
		PartName:  row.PartName,
		PartIPN:   row.PartIPN,
		Quantity:  row.QuantityRaw,
		Reference: row.Reference,
		Overage:   row.Overage,
		Note:      row.Note,
		Errors:    row.Errors,
	}
	for _, c := range row.Candidates {
		out.Candidates = append(out.Candidates, viewmodels.BomImportCandidate{
			PartID: c.Part.ID(),
			Label:  c.Part.FullName(),
			Rank:   c.Rank,
		})
	}
	return out
}

// SessionToDomain rebuilds the engine's view from a round-tripped session
// payload. Mapping flags are recomputed rather than trusted from the wire.
func SessionToDomain(vm *viewmodels.BomImportSession) *bomimport.SessionView {
	headers := make([]string, len(vm.Columns))
	guesses := make([]bomimport.Field, len(vm.Columns))
	for i, c := range vm.Columns {
		headers[i] = c.Header
		guesses[i] = bomimport.ParseField(c.Field)
	}

	rows := make([]*bomimport.Row, 0, len(vm.Rows))
	for _, r := range vm.Rows {
		rows = append(rows, &bomimport.Row{
			Index:          r.Index,
			Cells:          r.Cells,
			SelectedPartID: r.PartID,
			QuantityRaw:    r.Quantity,
			PartName:       r.PartName,
			PartIPN:        r.PartIPN,
			Reference:      r.Reference,
			Overage:        r.Overage,
			Note:           r.Note,
			Errors:         map[string]string{},
		})
	}

	return &bomimport.SessionView{
		ParentPartID: vm.ParentPartID,
		Stage:        bomimport.Stage(vm.Stage),
		Mapping:      bomimport.Classify(headers, guesses),
		Rows:         rows,
	}
}

func CommitResultToViewModel(result *bomimport.CommitResult) *viewmodels.BomCommitResult {
	return &viewmodels.BomCommitResult{
		Committed:    true,
		ParentPartID: result.ParentPartID,
		ItemCount:    result.ItemCount,
	}
}

func BomItemToViewModel(item *bomitem.BomItem, subName string) viewmodels.BomItem {
	return viewmodels.BomItem{
		ID:           item.ID(),
		ParentPartID: item.ParentPartID(),
		SubPartID:    item.SubPartID(),
		SubPartName:  subName,
		Quantity:     item.Quantity().String(),
		Overage:      item.Overage(),
		Reference:    item.Reference(),
		Note:         item.Note(),
	}
}

func PartToViewModel(p *part.Part) viewmodels.Part {
	return viewmodels.Part{
		ID:           p.ID(),
		IPN:          p.IPN(),
		Name:         p.Name(),
		Description:  p.Description(),
		Units:        p.Units(),
		Trackable:    p.Trackable(),
		Assembly:     p.Assembly(),
		Component:    p.Component(),
		Active:       p.Active(),
		BomValidated: p.BomValidated(),
	}
}
