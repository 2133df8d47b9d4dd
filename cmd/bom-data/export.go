package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/partlane/partlane/modules/catalog/infrastructure/persistence"
	"github.com/partlane/partlane/modules/catalog/services"
)

func newExportCmd() *cobra.Command {
	var (
		partID uint
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a part's BOM to a CSV or XLSX file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			exportService := services.NewBomExportService(
				persistence.NewPartRepository(),
				persistence.NewBomItemRepository(),
			)
			data, filename, err := exportService.Export(ctx, partID, services.ExportFormat(format))
			if err != nil {
				return err
			}

			if output == "" {
				output = filename
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			cmd.Printf("wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().UintVar(&partID, "part", 0, "ID of the assembly to export")
	cmd.Flags().StringVar(&output, "output", "", "output path (defaults to a name derived from the part)")
	cmd.Flags().StringVar(&format, "format", "csv", "csv or xlsx")
	_ = cmd.MarkFlagRequired("part")
	return cmd
}
