package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/firm-profiler/internal/config"
	"github.com/sells-group/firm-profiler/internal/dataset"
	"github.com/sells-group/firm-profiler/internal/export"
	"github.com/sells-group/firm-profiler/internal/fetcher"
	"github.com/sells-group/firm-profiler/internal/profile"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify every firm in a spreadsheet",
	Long: `Classify every row of an XLSX or CSV file and export the table with six
profile columns appended: Revenue profile, Colab profile, Lawsuit profile,
Parcial, Final and Nova.

Examples:
  # Classify the first sheet and write tabela_perfilada_<timestamp>.xlsx
  classify --input escritorios.xlsx

  # Pick a sheet and the columns holding each metric
  classify --input base.xlsx --sheet "Base 2024" \
    --revenue-col "Receita 12M" --colab-col "Nº Colaboradores" --lawsuit-col Processos

  # Weight revenue heavier and print a table with a label summary
  classify --input base.csv --revenue-weight 3 --colab-weight 2 --lawsuit-weight 2 \
    --format table --summary`,
	RunE: runClassify,
}

func init() {
	f := classifyCmd.Flags()
	f.String("input", "", "input file (.xlsx or .csv)")
	f.String("sheet", "", "XLSX sheet name (default: first sheet)")
	f.String("revenue-col", "", "revenue column (overrides config)")
	f.String("colab-col", "", "collaborator count column (overrides config)")
	f.String("lawsuit-col", "", "lawsuit count column (overrides config)")
	f.Int("revenue-weight", 0, "revenue weight 0-3 (overrides config)")
	f.Int("colab-weight", 0, "collaborator weight 0-3 (overrides config)")
	f.Int("lawsuit-weight", 0, "lawsuit weight 0-3 (overrides config)")
	f.Int("concurrency", 0, "records classified at once (0=use config)")
	f.String("encoding", "", "CSV charset, e.g. windows-1252 (overrides config)")
	f.String("delimiter", "", "CSV delimiter (overrides config)")
	f.String("rules", "", "YAML rules file (overrides config)")
	f.String("output", "", "output file path (default: stdout, or a timestamped file for xlsx)")
	f.String("format", "", "output format: xlsx, csv, json, yaml or table (overrides config)")
	f.Bool("summary", false, "print the label distribution to stderr")
	_ = classifyCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := applyClassifyOverrides(cmd, *cfg)
	if err := c.Validate("classify"); err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		return eris.New("classify: --input is required")
	}
	sheet, _ := cmd.Flags().GetString("sheet")

	classifier, err := newClassifier(c.Profile)
	if err != nil {
		return err
	}

	start := time.Now()
	tbl, err := loadTable(ctx, input, sheet, c.Input)
	if err != nil {
		return err
	}

	recs, err := tbl.Records(dataset.ColumnMap{
		Revenue: c.Input.RevenueColumn,
		Colab:   c.Input.ColabColumn,
		Lawsuit: c.Input.LawsuitColumn,
	})
	if err != nil {
		return eris.Wrapf(err, "classify: %s", input)
	}

	outcomes := classifier.ClassifyBatch(ctx, recs, c.Profile.Weights)
	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "classify: interrupted")
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" && c.Output.Format == "xlsx" {
		output = "tabela_perfilada_" + time.Now().Format("2006-01-02_15-04-05") + ".xlsx"
	}
	if err := writeClassifyOutput(cmd.OutOrStdout(), output, c.Output, tbl, outcomes); err != nil {
		return err
	}

	summary := export.Summarize(outcomes)
	if v, _ := cmd.Flags().GetBool("summary"); v {
		if err := summary.Print(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}

	zap.L().Info("classify: complete",
		zap.String("input", input),
		zap.String("output", output),
		zap.Int("records", summary.Total),
		zap.Int("failed", summary.Errors),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// applyClassifyOverrides returns a copy of the base config with CLI flag overrides applied.
func applyClassifyOverrides(cmd *cobra.Command, base config.Config) config.Config {
	c := base
	f := cmd.Flags()

	if v, _ := f.GetString("revenue-col"); v != "" {
		c.Input.RevenueColumn = v
	}
	if v, _ := f.GetString("colab-col"); v != "" {
		c.Input.ColabColumn = v
	}
	if v, _ := f.GetString("lawsuit-col"); v != "" {
		c.Input.LawsuitColumn = v
	}
	if v, _ := f.GetString("encoding"); v != "" {
		c.Input.Encoding = v
	}
	if v, _ := f.GetString("delimiter"); v != "" {
		c.Input.Delimiter = v
	}
	// Zero is a valid weight, so only flags the user set apply.
	if f.Changed("revenue-weight") {
		c.Profile.Weights.Revenue, _ = f.GetInt("revenue-weight")
	}
	if f.Changed("colab-weight") {
		c.Profile.Weights.Colab, _ = f.GetInt("colab-weight")
	}
	if f.Changed("lawsuit-weight") {
		c.Profile.Weights.Lawsuit, _ = f.GetInt("lawsuit-weight")
	}
	if v, _ := f.GetInt("concurrency"); v > 0 {
		c.Profile.Concurrency = v
	}
	if v, _ := f.GetString("rules"); v != "" {
		c.Profile.RulesFile = v
	}
	if v, _ := f.GetString("format"); v != "" {
		c.Output.Format = v
	}

	return c
}

// newClassifier loads the configured rules, logging any unreachable bands.
func newClassifier(pc config.ProfileConfig) (*profile.Classifier, error) {
	rules, err := profile.LoadRules(pc.RulesFile)
	if err != nil {
		return nil, err
	}
	for _, w := range rules.Warnings() {
		zap.L().Warn("profile: rules warning", zap.String("warning", w))
	}
	return profile.New(rules, profile.WithConcurrency(pc.Concurrency))
}

func loadTable(ctx context.Context, path, sheet string, in config.InputConfig) (*dataset.Table, error) {
	rows, err := fetcher.ReadFile(ctx, path, fetcher.Options{
		Sheet:     sheet,
		Delimiter: delimiterRune(in.Delimiter),
		Encoding:  in.Encoding,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "classify: read %s", path)
	}
	tbl, err := dataset.FromRows(rows)
	if err != nil {
		return nil, eris.Wrapf(err, "classify: %s", path)
	}
	return tbl, nil
}

func delimiterRune(s string) rune {
	switch s {
	case "", ",":
		return ','
	case `\t`, "tab":
		return '\t'
	}
	return []rune(s)[0]
}

func writeClassifyOutput(stdout io.Writer, path string, oc config.OutputConfig, tbl *dataset.Table, outcomes []profile.Outcome) error {
	w := stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return eris.Wrapf(err, "classify: create output file %s", path)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	switch oc.Format {
	case "json":
		return export.WriteJSON(w, export.Entries(tbl, outcomes))
	case "yaml":
		return export.WriteYAML(w, export.Entries(tbl, outcomes))
	}

	header, rows, err := export.Rows(tbl, outcomes)
	if err != nil {
		return err
	}
	switch oc.Format {
	case "xlsx":
		return export.WriteXLSX(w, oc.SheetName, header, rows)
	case "csv":
		return export.WriteCSV(w, header, rows)
	case "table":
		return export.WriteTable(w, header, rows)
	default:
		return eris.Errorf("classify: unsupported format %q", oc.Format)
	}
}
