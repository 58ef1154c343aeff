package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/firm-profiler/internal/config"
	"github.com/sells-group/firm-profiler/internal/profile"
)

// testConfig mirrors the config.Load defaults.
func testConfig() *config.Config {
	c := &config.Config{}
	c.Log = config.LogConfig{Level: "info", Format: "json"}
	c.Profile = config.ProfileConfig{Weights: profile.DefaultWeights(), Concurrency: 4}
	c.Input = config.InputConfig{
		RevenueColumn: "receita",
		ColabColumn:   "colaboradores",
		LawsuitColumn: "processos",
		Encoding:      "utf-8",
		Delimiter:     ",",
	}
	c.Output = config.OutputConfig{Format: "xlsx", SheetName: "Perfilamento"}
	c.Server = config.ServerConfig{Port: 8080, RateLimitRPS: 20, RateBurst: 40, MaxRecords: 10000, CORSOrigins: []string{"*"}}
	return c
}

// setFlags sets flags on cmd and restores their defaults when the test ends.
func setFlags(t *testing.T, cmd *cobra.Command, values map[string]string) {
	t.Helper()
	for name, v := range values {
		require.NoError(t, cmd.Flags().Set(name, v))
	}
	t.Cleanup(func() {
		for name := range values {
			fl := cmd.Flags().Lookup(name)
			_ = fl.Value.Set(fl.DefValue)
			fl.Changed = false
		}
	})
}

// runCmd executes cmd.RunE with a background context, capturing stdout and stderr.
func runCmd(t *testing.T, cmd *cobra.Command) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetContext(context.Background())
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
	})
	err := cmd.RunE(cmd, nil)
	return stdout.String(), stderr.String(), err
}

func writeFirmsXLSX(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	s, err := f.AddSheet(sheet)
	require.NoError(t, err)
	for _, r := range rows {
		row := s.AddRow()
		for _, v := range r {
			row.AddCell().SetString(v)
		}
	}
	path := filepath.Join(t.TempDir(), "escritorios.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

var firmRows = [][]string{
	{"Escritório", "Receita", "Colaboradores", "Processos"},
	{"Alpha", "60000", "3", "100"},
	{"Beta", "2000000", "2", "2000"},
	{"Gama", "", "6", "50"},
	{"Delta", "", "", ""},
}
