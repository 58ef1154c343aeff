package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/firm-profiler/internal/fetcher"
)

var sheetsInput string

var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "List the sheets of an XLSX file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if sheetsInput == "" {
			return eris.New("sheets: --input is required")
		}
		names, err := fetcher.SheetNames(sheetsInput)
		if err != nil {
			return err
		}
		for _, n := range names {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), n); err != nil {
				return eris.Wrap(err, "sheets: write")
			}
		}
		return nil
	},
}

func init() {
	sheetsCmd.Flags().StringVar(&sheetsInput, "input", "", "input XLSX file")
	rootCmd.AddCommand(sheetsCmd)
}
