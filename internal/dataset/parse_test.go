package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want float64
		ok   bool
	}{
		{"integer", "60000", 60000, true},
		{"plain decimal", "1234.56", 1234.56, true},
		{"brazilian decimal", "1.234,56", 1234.56, true},
		{"brazilian thousands", "2.000.000", 2000000, true},
		{"us thousands", "2,000,000.50", 2000000.5, true},
		{"comma decimal", "3,5", 3.5, true},
		{"currency", "R$ 1.500,00", 1500, true},
		{"nbsp", "1\u00a0500", 1500, true},
		{"lone dot is decimal", "2.000", 2, true},
		{"currency lone dot is thousands", "R$ 300.000", 300000, true},
		{"currency small thousands", "R$ 2.000", 2000, true},
		{"currency cents with dot", "R$ 2.50", 2.5, true},
		{"currency plain", "R$60000", 60000, true},
		{"scientific", "1.5E+6", 1500000, true},
		{"negative", "-10", -10, true},
		{"surrounding spaces", "  42 ", 42, true},
		{"empty", "", 0, false},
		{"dash", "-", 0, false},
		{"text", "n/d", 0, false},
		{"nan", "NaN", 0, false},
		{"inf", "Inf", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseNumber(tt.s)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParseMetric(t *testing.T) {
	assert.Nil(t, parseMetric("", false))
	assert.Nil(t, parseMetric("abc", true))
	assert.Nil(t, parseMetric("-1", false))
	assert.Nil(t, parseMetric("-0.5", true))
	assert.Nil(t, parseMetric("-0,9", false))

	v := parseMetric("7,9", true)
	require.NotNil(t, v)
	assert.Equal(t, 7.0, *v)

	v = parseMetric("7,9", false)
	require.NotNil(t, v)
	assert.InDelta(t, 7.9, *v, 1e-9)

	v = parseMetric("0", true)
	require.NotNil(t, v)
	assert.Equal(t, 0.0, *v)
}

func TestNormalizeCol(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Receita", "receita"},
		{"  RECEITA ", "receita"},
		{"Nº Colaboradores", "no colaboradores"},
		{"Número de  Processos", "numero de processos"},
		{"Faturamento Médio (R$)", "faturamento medio (r$)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeCol(tt.in))
		})
	}
}
