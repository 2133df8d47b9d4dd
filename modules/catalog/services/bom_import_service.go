package services

import (
	"context"
	"io"

	"github.com/partlane/partlane/modules/catalog/domain/aggregates/part"
	"github.com/partlane/partlane/modules/catalog/domain/bomimport"
	"github.com/partlane/partlane/modules/catalog/infrastructure/ingest"
	"github.com/partlane/partlane/pkg/composables"
)

// BomImportService drives the staged import workflow. It keeps no state
// between calls: each step receives the previous SessionView back from the
// caller, rebuilds the session around it and returns the next view.
type BomImportService struct {
	parts    part.Repository
	bom      *BomService
	ingester ingest.Ingester
}

func NewBomImportService(parts part.Repository, bom *BomService, ingester ingest.Ingester) *BomImportService {
	return &BomImportService{
		parts:    parts,
		bom:      bom,
		ingester: ingester,
	}
}

func (s *BomImportService) session(ctx context.Context, parentID uint) (*bomimport.Session, error) {
	allowed, err := s.parts.AllowedComponentsOf(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return bomimport.NewSession(parentID, bomimport.NewAllowedPartSet(allowed)), nil
}

// BeginImport parses the uploaded file and opens a session at the
// field-selection stage. Unreadable or empty files re-render the
// file-selection stage with the failure attached.
func (s *BomImportService) BeginImport(ctx context.Context, parentID uint, filename string, file io.Reader) (*bomimport.SessionView, error) {
	if _, err := s.parts.GetByID(ctx, parentID); err != nil {
		return nil, err
	}
	session, err := s.session(ctx, parentID)
	if err != nil {
		return nil, err
	}

	grid, err := s.ingester.Parse(ctx, filename, file)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("bom import: file rejected")
		return &bomimport.SessionView{
			ParentPartID: parentID,
			Stage:        bomimport.StageSelectFile,
			FileError:    err.Error(),
		}, nil
	}
	return session.Begin(grid), nil
}

// SubmitFieldMapping applies the user's column assignments. On a valid
// mapping the rows are pre-filled through the matcher and the view advances
// to part selection; otherwise field selection re-renders with diagnostics.
func (s *BomImportService) SubmitFieldMapping(ctx context.Context, view *bomimport.SessionView, guesses []bomimport.Field) (*bomimport.SessionView, error) {
	session, err := s.session(ctx, view.ParentPartID)
	if err != nil {
		return nil, err
	}
	return session.SubmitFieldMapping(view, guesses)
}

// SubmitPartSelection merges the user's row edits, validates the full row
// set and, when every row is clean, commits the replacement BOM. A commit
// failure leaves the session at part selection so the user can retry.
func (s *BomImportService) SubmitPartSelection(ctx context.Context, view *bomimport.SessionView, edits []bomimport.RowEdit) (*bomimport.SessionView, *bomimport.CommitResult, error) {
	session, err := s.session(ctx, view.ParentPartID)
	if err != nil {
		return nil, nil, err
	}

	valid, err := session.SubmitPartSelection(ctx, view, edits, s.parts.IsAncestor)
	if err != nil {
		return nil, nil, err
	}
	if !valid {
		return view, nil, nil
	}

	if err := s.bom.Commit(ctx, view.ParentPartID, view.Rows); err != nil {
		return view, nil, err
	}
	return view, session.MarkCommitted(view), nil
}
