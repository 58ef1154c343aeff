package main

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/firm-profiler/internal/fetcher"
	"github.com/sells-group/firm-profiler/internal/profile"
)

func TestClassify_XLSXToXLSX(t *testing.T) {
	cfg = testConfig()
	in := writeFirmsXLSX(t, "Base", firmRows)
	out := filepath.Join(t.TempDir(), "perfilada.xlsx")
	setFlags(t, classifyCmd, map[string]string{"input": in, "output": out})

	_, _, err := runCmd(t, classifyCmd)
	require.NoError(t, err)

	rows, err := fetcher.ReadXLSX(out, fetcher.XLSXOptions{SheetName: "Perfilamento"})
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, append(append([]string{}, firmRows[0]...), profile.Columns...), rows[0])
	assert.Equal(t, []string{"Alpha", "60000", "3", "100", "Mosca", "Mosca", "Mosca", "Sem perfil", "Mosca", "Mosca"}, rows[1])
	assert.Equal(t, []string{"Beta", "2000000", "2", "2000", "Pesado", "Mosca", "Pesado", "Pesado", "Pesado", "Médio"}, rows[2])
	assert.Equal(t, "Mosca", rows[3][8])
	assert.Equal(t, "Erro", rows[4][9])
}

func TestClassify_CSVWithOverrides(t *testing.T) {
	cfg = testConfig()
	dir := t.TempDir()
	in := filepath.Join(dir, "base.csv")
	require.NoError(t, os.WriteFile(in, []byte(
		"nome;Faturamento;Equipe;Ações\n"+
			"Alpha;60.000,00;11;1500\n"), 0o644))
	out := filepath.Join(dir, "out.csv")

	setFlags(t, classifyCmd, map[string]string{
		"input":          in,
		"output":         out,
		"format":         "csv",
		"delimiter":      ";",
		"revenue-col":    "faturamento",
		"colab-col":      "equipe",
		"lawsuit-col":    "acoes",
		"revenue-weight": "0",
		"lawsuit-weight": "0",
	})

	_, _, err := runCmd(t, classifyCmd)
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Only colab carries weight, so Nova follows the colab band.
	assert.Equal(t, []string{"Alpha", "60.000,00", "11", "1500", "Mosca", "Pesado", "Pesado", "Pesado", "Pesado", "Pesado"}, records[1])
}

func TestClassify_JSONToStdoutWithSummary(t *testing.T) {
	cfg = testConfig()
	in := writeFirmsXLSX(t, "Base", firmRows)
	setFlags(t, classifyCmd, map[string]string{"input": in, "format": "json", "summary": "true"})

	stdout, stderr, err := runCmd(t, classifyCmd)
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 4)
	assert.Equal(t, "Pesado", entries[1]["final_profile"])

	assert.Contains(t, stderr, "Registros: 4 (erros: 1)")
	assert.Contains(t, stderr, "Nova")
}

func TestClassify_MissingColumn(t *testing.T) {
	cfg = testConfig()
	in := writeFirmsXLSX(t, "Base", firmRows)
	setFlags(t, classifyCmd, map[string]string{"input": in, "format": "table", "lawsuit-col": "acoes"})

	_, _, err := runCmd(t, classifyCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "acoes" not in header`)
}

func TestClassify_InvalidWeights(t *testing.T) {
	cfg = testConfig()
	setFlags(t, classifyCmd, map[string]string{"input": "x.xlsx", "revenue-weight": "7"})

	_, _, err := runCmd(t, classifyCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revenue weight 7")
}

func TestClassify_MissingInput(t *testing.T) {
	cfg = testConfig()
	_, _, err := runCmd(t, classifyCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input is required")
}

func TestClassify_BadRulesFile(t *testing.T) {
	cfg = testConfig()
	rules := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte("profile_rules:\n  partial: []\n"), 0o644))
	in := writeFirmsXLSX(t, "Base", firmRows)
	setFlags(t, classifyCmd, map[string]string{"input": in, "rules": rules, "format": "csv"})

	_, _, err := runCmd(t, classifyCmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, profile.ErrInvalidRules)
}

func TestApplyClassifyOverrides_ZeroWeight(t *testing.T) {
	base := testConfig()
	setFlags(t, classifyCmd, map[string]string{"colab-weight": "0", "format": "yaml"})

	c := applyClassifyOverrides(classifyCmd, *base)
	assert.Equal(t, profile.WeightSet{Revenue: 1, Colab: 0, Lawsuit: 1}, c.Profile.Weights)
	assert.Equal(t, "yaml", c.Output.Format)
	// The base config is untouched.
	assert.Equal(t, profile.DefaultWeights(), base.Profile.Weights)
}

func TestDelimiterRune(t *testing.T) {
	assert.Equal(t, ',', delimiterRune(""))
	assert.Equal(t, ';', delimiterRune(";"))
	assert.Equal(t, '\t', delimiterRune(`\t`))
	assert.Equal(t, '\t', delimiterRune("tab"))
	assert.Equal(t, '|', delimiterRune("|"))
}
