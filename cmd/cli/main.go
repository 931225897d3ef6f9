package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"logireport/adapters/excel"
	"logireport/domain/report"
	"logireport/internal"
	"logireport/internal/config"
	"logireport/ui/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "logireport",
		Short:         "Inspection and collection status reports for logistics spreadsheets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newSummarizeCmd())
	return rootCmd
}

func newSummarizeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Print the inspection and collection status distributions of a CSV or XLSX file",
		Long: `Read a CSV or XLSX file, normalize its headers and print the distribution
of status_vistoria and status_da_coleta.

Example: logireport summarize base.xlsx --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := summarize(cmd, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rep)
			}
			return writeTables(cmd.OutOrStdout(), rep)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func summarize(cmd *cobra.Command, path string) (*report.Report, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Logging.Level), false)
	defer logger.Sync()

	reader := excel.NewDataReader(excel.DefaultReaderConfig(), logger)
	ds, err := reader.ReadFile(cmd.Context(), path)
	if err != nil {
		return nil, err
	}

	svc := services.NewReportService(reader, cfg.Palettes, cfg.Upload.PreviewRows, logger)
	return svc.FromDataset(filepath.Base(path), ds)
}

func writeJSON(w io.Writer, rep *report.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rep)
}

func writeTables(w io.Writer, rep *report.Report) error {
	fmt.Fprintf(w, "%s (%d registros)\n", rep.Filename, rep.Table.Len())
	for _, section := range rep.Sections() {
		fmt.Fprintf(w, "\n%s:\n", section.LabelHeader)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "%s\tQuantidade\tPorcentagem\n", section.LabelHeader)
		for _, row := range section.Distribution.Rows {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", services.DisplayLabel(row.Label), row.Count, row.Display)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
