package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/partlane/partlane/modules/catalog/domain/bomimport"
	"github.com/partlane/partlane/modules/catalog/infrastructure/ingest"
	"github.com/partlane/partlane/modules/catalog/infrastructure/persistence"
	"github.com/partlane/partlane/modules/catalog/services"
	"github.com/partlane/partlane/pkg/configuration"
	"github.com/partlane/partlane/pkg/eventbus"
)

// newImportCmd runs the whole import pipeline headlessly. Unlike the HTTP
// workflow there is no user to fix up rows, so every part must resolve from
// the file alone and any validation error aborts the run.
func newImportCmd() *cobra.Command {
	var (
		partID uint
		input  string
		apply  bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace a part's BOM from a CSV, TSV or XLSX file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			partRepo := persistence.NewPartRepository()
			itemRepo := persistence.NewBomItemRepository()

			parent, err := partRepo.GetByID(ctx, partID)
			if err != nil {
				return errors.Wrapf(err, "part %d", partID)
			}

			file, err := os.Open(input)
			if err != nil {
				return err
			}
			defer func() {
				_ = file.Close()
			}()

			grid, err := ingest.New().Parse(ctx, filepath.Base(input), file)
			if err != nil {
				return err
			}

			allowed, err := partRepo.AllowedComponentsOf(ctx, partID)
			if err != nil {
				return err
			}
			session := bomimport.NewSession(partID, bomimport.NewAllowedPartSet(allowed))

			view := session.Begin(grid)
			if view.Stage == bomimport.StageSelectFile {
				return errors.New(view.FileError)
			}
			view, err = session.SubmitFieldMapping(view, view.Mapping.Guesses())
			if err != nil {
				return err
			}
			if view.Stage != bomimport.StageSelectParts {
				return mappingError(view.Mapping)
			}

			valid, err := session.SubmitPartSelection(ctx, view, nil, partRepo.IsAncestor)
			if err != nil {
				return err
			}
			if !valid {
				printRowErrors(cmd, view.Rows)
				return errors.New("import aborted: rows failed validation")
			}

			if !apply {
				cmd.Printf("dry run: %d rows validated against %q, no changes written (use --apply)\n", len(view.Rows), parent.FullName())
				return nil
			}

			publisher := eventbus.NewEventPublisher(configuration.Use().Logger())
			bomService := services.NewBomService(partRepo, itemRepo, publisher)
			if err := bomService.Commit(ctx, partID, view.Rows); err != nil {
				return err
			}
			cmd.Printf("replaced BOM of %q with %d items\n", parent.FullName(), len(view.Rows))
			return nil
		},
	}

	cmd.Flags().UintVar(&partID, "part", 0, "ID of the assembly whose BOM is replaced")
	cmd.Flags().StringVar(&input, "input", "", "path to the BOM file")
	cmd.Flags().BoolVar(&apply, "apply", false, "write the new BOM instead of a dry run")
	_ = cmd.MarkFlagRequired("part")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func mappingError(mapping bomimport.ColumnMapping) error {
	if len(mapping.Missing) > 0 {
		return errors.Errorf("file headers do not cover required fields: %v", mapping.Missing)
	}
	return errors.New("file assigns the same field to multiple columns")
}

func printRowErrors(cmd *cobra.Command, rows []*bomimport.Row) {
	for _, row := range rows {
		for field, msg := range row.Errors {
			cmd.PrintErrln(fmt.Sprintf("row %d [%s]: %s", row.Index+1, field, msg))
		}
	}
}
