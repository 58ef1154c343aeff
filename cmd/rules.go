package main

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/firm-profiler/internal/profile"
)

var rulesFile string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the active rule tables as YAML",
	Long:  "Print the threshold, partial and conflict tables in the format accepted by --rules. Unreachable bands are listed as comments.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("rules"); err != nil {
			return err
		}
		path := rulesFile
		if path == "" {
			path = cfg.Profile.RulesFile
		}
		rules, err := profile.LoadRules(path)
		if err != nil {
			return err
		}
		return printRules(cmd.OutOrStdout(), rules)
	},
}

func init() {
	rulesCmd.Flags().StringVar(&rulesFile, "rules", "", "YAML rules file (default from config)")
	rootCmd.AddCommand(rulesCmd)
}

func printRules(w io.Writer, rules profile.Rules) error {
	for _, warn := range rules.Warnings() {
		zap.L().Warn("rules: unreachable band", zap.String("warning", warn))
		if _, err := fmt.Fprintf(w, "# warning: %s\n", warn); err != nil {
			return eris.Wrap(err, "rules: write")
		}
	}
	doc, err := rules.MarshalDocument()
	if err != nil {
		return err
	}
	if _, err := w.Write(doc); err != nil {
		return eris.Wrap(err, "rules: write")
	}
	return nil
}
