package bomimport

import (
	"context"

	"github.com/partlane/partlane/pkg/serrors"
)

// Stage of the import workflow. Stages only move forward or re-render; a
// committed session is terminal.
type Stage string

const (
	StageSelectFile   Stage = "select_file"
	StageSelectFields Stage = "select_fields"
	StageSelectParts  Stage = "select_parts"
	StageCommitted    Stage = "committed"
)

var ErrSessionCommitted = serrors.NewError("BOM_IMPORT_COMMITTED", "import session is already committed", "")

// SessionView is the full state the caller round-trips between steps. The
// engine holds no session identity of its own: every step rebuilds its
// working state from the view the caller submits.
type SessionView struct {
	ParentPartID uint
	Stage        Stage
	Mapping      ColumnMapping
	Rows         []*Row
	FileError    string
}

// CommitResult confirms a terminal commit back to the caller.
type CommitResult struct {
	ParentPartID uint
	ItemCount    int
}

// Session drives one import interaction against a fixed parent part and its
// precomputed allowed part set.
type Session struct {
	parentID uint
	allowed  *AllowedPartSet
}

func NewSession(parentID uint, allowed *AllowedPartSet) *Session {
	return &Session{parentID: parentID, allowed: allowed}
}

func (s *Session) Allowed() *AllowedPartSet {
	return s.allowed
}

// Begin consumes the extracted file grid and advances to field selection.
// An empty or missing grid re-renders the file-selection stage with the
// failure attached; nothing is retained from the failed attempt.
func (s *Session) Begin(grid *Grid) *SessionView {
	if grid.Empty() {
		return &SessionView{
			ParentPartID: s.parentID,
			Stage:        StageSelectFile,
			FileError:    ErrNoData.Message,
		}
	}

	guesses := make([]Field, len(grid.Headers))
	for i, header := range grid.Headers {
		guesses[i] = GuessField(header)
	}

	rows := make([]*Row, len(grid.Rows))
	for i, cells := range grid.Rows {
		rows[i] = &Row{Index: i, Cells: cells, Errors: map[string]string{}}
	}

	return &SessionView{
		ParentPartID: s.parentID,
		Stage:        StageSelectFields,
		Mapping:      Classify(grid.Headers, guesses),
		Rows:         rows,
	}
}

// SubmitFieldMapping re-classifies the user's column assignments. A valid
// mapping advances to part selection and pre-fills every row through the
// matcher; an invalid one re-renders field selection with diagnostics.
func (s *Session) SubmitFieldMapping(view *SessionView, guesses []Field) (*SessionView, error) {
	if view.Stage == StageCommitted {
		return nil, ErrSessionCommitted
	}

	view.Mapping = Classify(view.Mapping.Headers(), guesses)
	if !view.Mapping.Valid() {
		view.Stage = StageSelectFields
		return view, nil
	}

	for _, row := range view.Rows {
		MatchRow(row, view.Mapping, s.allowed)
		row.Errors = map[string]string{}
	}
	view.Stage = StageSelectParts
	return view, nil
}

// SubmitPartSelection merges the user's per-row edits onto the row set and
// validates the result. It reports whether the rows are fit to commit; the
// stage stays at part selection either way, and the caller performs the
// commit and marks the session on success.
func (s *Session) SubmitPartSelection(ctx context.Context, view *SessionView, edits []RowEdit, isAncestor AncestorFunc) (bool, error) {
	if view.Stage == StageCommitted {
		return false, ErrSessionCommitted
	}

	s.applyEdits(view.Rows, edits)
	view.Stage = StageSelectParts

	return ValidateRows(ctx, s.parentID, view.Rows, s.allowed, isAncestor)
}

// MarkCommitted finalizes the session after a successful commit.
func (s *Session) MarkCommitted(view *SessionView) *CommitResult {
	view.Stage = StageCommitted
	return &CommitResult{
		ParentPartID: s.parentID,
		ItemCount:    len(view.Rows),
	}
}

func (s *Session) applyEdits(rows []*Row, edits []RowEdit) {
	byIndex := make(map[int]*Row, len(rows))
	for _, row := range rows {
		byIndex[row.Index] = row
	}

	for _, edit := range edits {
		row, ok := byIndex[edit.RowIndex]
		if !ok {
			continue
		}

		row.SelectedPartID = edit.PartID
		row.QuantityRaw = edit.Quantity
		row.Reference = edit.Reference
		row.Overage = edit.Overage
		row.Note = edit.Note
	}
}
