package main

import (
	"encoding/json"

	"github.com/deppfellow/vocab/internal/lib/importer"
	"github.com/deppfellow/vocab/internal/repository"
	"github.com/deppfellow/vocab/internal/server"
	"github.com/deppfellow/vocab/internal/service"
	"github.com/spf13/cobra"
)

func newImportWordsCommand() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "import-words <file.xlsx|file.csv>",
		Short: "Bulk-create catalog words from a spreadsheet",
		Long: "Reads a header row naming the word columns (word and definition are required)\n" +
			"and creates one word per row. List columns use \"" + importer.ListSeparator + "\" between items.\n" +
			"Prints a JSON report of created, skipped and failed rows.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, loggerService, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			rows, err := importer.ReadFile(args[0], importer.Options{Sheet: sheet})
			if err != nil {
				return err
			}

			srv, err := server.New(cfg, log, loggerService)
			if err != nil {
				return err
			}
			defer func() { _ = srv.Close() }()

			services, err := service.NewService(srv, repository.NewRepositories(srv))
			if err != nil {
				return err
			}

			report, err := services.Word.Import(cmd.Context(), rows)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", importer.DefaultSheet, "worksheet to read from .xlsx files")

	return cmd
}
