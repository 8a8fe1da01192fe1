package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLancamentoInput() LancamentoInput {
	venc := NewDate(2024, time.March, 10)
	valor := decimal.RequireFromString("150.75")
	return LancamentoInput{
		Descricao:      "Conta de luz",
		DataVencimento: &venc,
		Valor:          &valor,
		Tipo:           TipoDespesa,
		Categoria:      &Ref{Codigo: 2},
		Pessoa:         &Ref{Codigo: 3},
	}
}

func TestNewLancamento(t *testing.T) {
	l, err := NewLancamento(validLancamentoInput())

	require.NoError(t, err)
	assert.Equal(t, "Conta de luz", l.Descricao)
	assert.Equal(t, "2024-03-10", l.DataVencimento.String())
	assert.Nil(t, l.DataPagamento)
	assert.True(t, decimal.RequireFromString("150.75").Equal(l.Valor))
	assert.Equal(t, int64(2), l.Categoria.Codigo)
	assert.Equal(t, int64(3), l.Pessoa.Codigo)
}

func TestLancamentoInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *LancamentoInput)
		field  string
	}{
		{"missing descricao", func(in *LancamentoInput) { in.Descricao = "" }, "descricao"},
		{"missing vencimento", func(in *LancamentoInput) { in.DataVencimento = nil }, "dataVencimento"},
		{"missing valor", func(in *LancamentoInput) { in.Valor = nil }, "valor"},
		{"zero valor", func(in *LancamentoInput) { z := decimal.Zero; in.Valor = &z }, "valor"},
		{"negative valor", func(in *LancamentoInput) { in.Valor = decimalPtr("-10.00") }, "valor"},
		{"valor with three decimals", func(in *LancamentoInput) { in.Valor = decimalPtr("10.005") }, "valor"},
		{"valor rounding to zero", func(in *LancamentoInput) { in.Valor = decimalPtr("0.001") }, "valor"},
		{"valor too large", func(in *LancamentoInput) { in.Valor = decimalPtr("12345678901.50") }, "valor"},
		{"valor at column limit", func(in *LancamentoInput) { in.Valor = decimalPtr("10000000000") }, "valor"},
		{"unknown tipo", func(in *LancamentoInput) { in.Tipo = "TRANSFERENCIA" }, "tipo"},
		{"missing categoria", func(in *LancamentoInput) { in.Categoria = nil }, "categoria"},
		{"invalid pessoa ref", func(in *LancamentoInput) { in.Pessoa = &Ref{} }, "pessoa.codigo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validLancamentoInput()
			tt.mutate(&in)

			var verr *ValidationError
			require.ErrorAs(t, in.Validate(), &verr)
			assert.True(t, verr.HasField(tt.field), "expected %s in %v", tt.field, verr.Fields)
		})
	}
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestLancamentoInput_ValorBounds(t *testing.T) {
	for _, v := range []string{"0.01", "10.5", "10.50", "10.500", "9999999999.99"} {
		t.Run(v, func(t *testing.T) {
			in := validLancamentoInput()
			in.Valor = decimalPtr(v)
			assert.NoError(t, in.Validate())
		})
	}
}

func TestLancamentoInput_JSON(t *testing.T) {
	body := `{
		"descricao": "Salário",
		"dataVencimento": "2024-05-05",
		"dataPagamento": "2024-05-06",
		"valor": 5000.00,
		"tipo": "RECEITA",
		"categoria": {"codigo": 1},
		"pessoa": {"codigo": 4}
	}`

	var in LancamentoInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	require.NoError(t, in.Validate())

	l, err := NewLancamento(in)
	require.NoError(t, err)
	require.NotNil(t, l.DataPagamento)
	assert.Equal(t, "2024-05-06", l.DataPagamento.String())
	assert.Equal(t, TipoReceita, l.Tipo)
	assert.Equal(t, "5000", l.Valor.String())
}

func TestLancamentoInput_InvalidDate(t *testing.T) {
	var in LancamentoInput
	err := json.Unmarshal([]byte(`{"dataVencimento":"10/03/2024"}`), &in)

	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestTipoLancamento_Valid(t *testing.T) {
	assert.True(t, TipoReceita.Valid())
	assert.True(t, TipoDespesa.Valid())
	assert.False(t, TipoLancamento("OUTRO").Valid())
}
