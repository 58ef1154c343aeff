package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/firm-profiler/internal/profile"
)

var defaultCols = ColumnMap{Revenue: "receita", Colab: "colaboradores", Lawsuit: "processos"}

func TestFromRows(t *testing.T) {
	tbl, err := FromRows([][]string{
		{" Escritório ", "Receita", "Colaboradores", "Processos"},
		{"Alpha", "60000", "3", "100"},
		{"", "", "", ""},
		{"Beta", "1.234,56"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Escritório", "Receita", "Colaboradores", "Processos"}, tbl.Header)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"Beta", "1.234,56", "", ""}, tbl.Rows[1])
}

func TestFromRows_NoHeader(t *testing.T) {
	_, err := FromRows(nil)
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = FromRows([][]string{{"", " "}})
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestTableIndex(t *testing.T) {
	tbl := &Table{Header: []string{"Nome", "RECEITA ", "Nº Colaboradores", "Número de Processos"}}

	i, err := tbl.Index("receita")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	i, err = tbl.Index("numero de processos")
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	_, err = tbl.Index("faturamento")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrColumnNotFound)
	assert.Contains(t, err.Error(), `column "faturamento" not in header`)
}

func TestRecords(t *testing.T) {
	tbl, err := FromRows([][]string{
		{"Escritório", "Processos", "RECEITA", "Colaboradores"},
		{"Alpha", "100", "60000", "3"},
		{"Beta", "2000", "R$ 2.000.000,00", "2,7"},
		{"Gama", "50", "", "6"},
		{"Delta", "n/d", "-5", "x"},
		{"Epsilon", "-0.5", "R$ 300.000", "-0,4"},
	})
	require.NoError(t, err)

	recs, err := tbl.Records(defaultCols)
	require.NoError(t, err)
	require.Len(t, recs, 5)

	assert.Equal(t, profile.NewRecord(60_000, 3, 100), recs[0])
	assert.Equal(t, profile.NewRecord(2_000_000, 2, 2000), recs[1])
	assert.Equal(t, profile.Record{Colab: profile.Value(6), Lawsuit: profile.Value(50)}, recs[2])
	assert.Equal(t, profile.Record{}, recs[3])
	assert.Equal(t, profile.Record{Revenue: profile.Value(300_000)}, recs[4])
}

func TestRecords_MissingColumn(t *testing.T) {
	tbl, err := FromRows([][]string{{"receita", "colaboradores"}, {"1", "2"}})
	require.NoError(t, err)

	_, err = tbl.Records(defaultCols)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrColumnNotFound)
	assert.Contains(t, err.Error(), "processos")
}

func TestRecords_ClassifiesEndToEnd(t *testing.T) {
	tbl, err := FromRows([][]string{
		{"receita", "colaboradores", "processos"},
		{"2.000.000", "2", "2000"},
	})
	require.NoError(t, err)

	recs, err := tbl.Records(defaultCols)
	require.NoError(t, err)

	got, err := profile.Classify(recs[0], profile.DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, profile.Pesado, got.Final)
	assert.Equal(t, profile.Medio, got.Weighted)
}
