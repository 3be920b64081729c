package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"esglens/adapters/excel"
	"esglens/app"
	"esglens/internal/config"
	"esglens/internal/filter"
	"esglens/internal/report"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "esglens",
		Short:         "Offline ESG dashboard summaries for CSV and XLSX files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newSummarizeCmd(),
		newReportCmd(),
	)
	return rootCmd
}

// selectionFlags are the filter overrides shared by every command
type selectionFlags struct {
	from          int
	to            int
	industries    []string
	regions       []string
	allIndustries bool
	missingYear   bool
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.from, "from", 0, "First year to include (default: earliest observed)")
	cmd.Flags().IntVar(&f.to, "to", 0, "Last year to include (default: latest observed)")
	cmd.Flags().StringSliceVar(&f.industries, "industry", nil, "Industries to include (repeatable)")
	cmd.Flags().StringSliceVar(&f.regions, "region", nil, "Regions to include (repeatable)")
	cmd.Flags().BoolVar(&f.allIndustries, "all-industries", false, "Include every industry instead of the default subset")
	cmd.Flags().BoolVar(&f.missingYear, "include-missing-year", true, "Keep rows whose year is missing or not a number")
}

// apply overrides the dataset's default selection with the flags that were set
func (f *selectionFlags) apply(cmd *cobra.Command, ds *app.Dataset) filter.Selection {
	sel := ds.DefaultSelection.Clone()
	if f.allIndustries {
		sel.Industries = append([]string{}, ds.Options.Industries...)
	}

	if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
		years := filter.YearRange{Min: f.from, Max: f.to}
		if ds.Options.Years != nil {
			if !cmd.Flags().Changed("from") {
				years.Min = ds.Options.Years.Min
			}
			if !cmd.Flags().Changed("to") {
				years.Max = ds.Options.Years.Max
			}
		}
		sel.Years = &years
	}
	if cmd.Flags().Changed("include-missing-year") {
		sel.IncludeMissingYear = f.missingYear
	}
	if cmd.Flags().Changed("industry") {
		sel.Industries = f.industries
	}
	if cmd.Flags().Changed("region") {
		sel.Regions = f.regions
	}
	return sel
}

func newSummarizeCmd() *cobra.Command {
	var flags selectionFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summarize <file>",
		Short: "Print KPIs and the dataset summary for a filtered view",
		Long: `Load a CSV or XLSX file, apply the selection and print the dashboard summary.

Example: esglens summarize esg.csv --from 2020 --to 2022 --industry Tech --industry Energy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := runDashboard(cmd.Context(), cmd, args[0], &flags)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			}
			printSummary(cmd.OutOrStdout(), d)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full dashboard as JSON")
	return cmd
}

func newReportCmd() *cobra.Command {
	var flags selectionFlags
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Render the dataset summary report as Markdown or HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, ds, err := runDashboard(cmd.Context(), cmd, args[0], &flags)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("ESG Analytics Report: %s", ds.Name)
			if asHTML {
				_, err = cmd.OutOrStdout().Write(report.HTML(title, d))
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), report.Markdown(title, d))
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render HTML instead of Markdown")
	return cmd
}

func runDashboard(ctx context.Context, cmd *cobra.Command, path string, flags *selectionFlags) (*app.Dashboard, *app.Dataset, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	svc := app.NewDashboardService(excel.NewDataReader(excel.DefaultReaderConfig()), cfg.Dashboard, 1)
	ds, err := svc.Load(ctx, filepath.Base(path), f)
	if err != nil {
		return nil, nil, err
	}

	d, err := svc.Recompute(ds, flags.apply(cmd, ds))
	if err != nil {
		return nil, nil, err
	}
	return d, ds, nil
}

func printSummary(w io.Writer, d *app.Dashboard) {
	fmt.Fprintln(w, "Key metrics")
	for _, k := range d.KPIs {
		fmt.Fprintf(w, "  %-24s %.2f\n", k.Label, k.Value)
	}

	s := d.Summary
	fmt.Fprintln(w, "\nDataset")
	fmt.Fprintf(w, "  %-24s %d\n", "Records", s.Records)
	fmt.Fprintf(w, "  %-24s %s\n", "Companies", countOrNA(s.Companies))
	fmt.Fprintf(w, "  %-24s %s\n", "Industries", countOrNA(s.Industries))
	fmt.Fprintf(w, "  %-24s %s\n", "Regions", countOrNA(s.Regions))
	if s.Period != nil {
		fmt.Fprintf(w, "  %-24s %g - %g\n", "Time period", s.Period.From, s.Period.To)
	}
	if s.Completeness != nil {
		fmt.Fprintf(w, "  %-24s %.1f%%\n", "Completeness", *s.Completeness)
	}
	fmt.Fprintf(w, "  %-24s %d\n", "Missing values", s.MissingCells)
	fmt.Fprintf(w, "  %-24s %d\n", "Columns", s.ColumnCount)
	if len(s.NegativeColumns) > 0 {
		fmt.Fprintf(w, "  %-24s %s\n", "Negative values in", strings.Join(s.NegativeColumns, ", "))
	}

	for _, a := range d.Advisories {
		fmt.Fprintf(w, "\nNote: %s\n", a)
	}

	charts := make([]string, len(d.Charts))
	for i, c := range d.Charts {
		charts[i] = c.ID
	}
	fmt.Fprintf(w, "\nCharts: %s\n", strings.Join(charts, ", "))
	for _, sk := range d.Skipped {
		fmt.Fprintf(w, "Skipped %s: %s\n", sk.Widget, sk.Reason)
	}
}

func countOrNA(n *int) string {
	if n == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *n)
}
