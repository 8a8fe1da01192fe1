package domain

import (
	"github.com/shopspring/decimal"
)

// TipoLancamento tells incoming from outgoing money.
type TipoLancamento string

// Lancamento types.
const (
	TipoReceita TipoLancamento = "RECEITA"
	TipoDespesa TipoLancamento = "DESPESA"
)

// Valid reports whether t is a known type.
func (t TipoLancamento) Valid() bool {
	return t == TipoReceita || t == TipoDespesa
}

// Lancamento is a financial entry (receivable or payable).
//
// Categoria and Pessoa hold only their Codigo when loaded from storage; the
// service layer hydrates the remaining fields explicitly.
type Lancamento struct {
	Codigo         int64           `json:"codigo"`
	Descricao      string          `json:"descricao"`
	DataVencimento Date            `json:"dataVencimento"`
	DataPagamento  *Date           `json:"dataPagamento"`
	Valor          decimal.Decimal `json:"valor"`
	Observacao     string          `json:"observacao,omitempty"`
	Tipo           TipoLancamento  `json:"tipo"`
	Categoria      Categoria       `json:"categoria"`
	Pessoa         Pessoa          `json:"pessoa"`
}

// Ref identifies a related entity by its codigo.
type Ref struct {
	Codigo int64 `json:"codigo" validate:"gt=0"`
}

// ValorScale is the number of decimal places stored for Lancamento.Valor,
// matching the NUMERIC(12, 2) column.
const ValorScale = 2

// maxValor is the first amount that no longer fits NUMERIC(12, 2).
var maxValor = decimal.New(1, 10)

// LancamentoInput carries the client-writable fields of a Lancamento.
type LancamentoInput struct {
	Descricao      string           `json:"descricao" validate:"required,max=50"`
	DataVencimento *Date            `json:"dataVencimento"`
	DataPagamento  *Date            `json:"dataPagamento"`
	Valor          *decimal.Decimal `json:"valor"`
	Observacao     string           `json:"observacao" validate:"max=100"`
	Tipo           TipoLancamento   `json:"tipo" validate:"required,oneof=RECEITA DESPESA"`
	Categoria      *Ref             `json:"categoria"`
	Pessoa         *Ref             `json:"pessoa"`
}

// Validate checks the input rules. The due date is required; the payment
// date only has to be a valid date when present.
func (in LancamentoInput) Validate() error {
	verr := validateStruct(in)

	if in.DataVencimento == nil || in.DataVencimento.IsZero() {
		verr.Add("dataVencimento", MsgObrigatorio)
	}
	if in.Valor == nil {
		verr.Add("valor", MsgObrigatorio)
	} else {
		switch {
		case !in.Valor.IsPositive():
			verr.Add("valor", "deve ser maior que 0")
		case !in.Valor.Round(ValorScale).Equal(*in.Valor):
			verr.Add("valor", "deve ter no máximo 2 casas decimais")
		case in.Valor.GreaterThanOrEqual(maxValor):
			verr.Add("valor", "deve ser menor que 10000000000")
		}
	}
	if in.Categoria == nil {
		verr.Add("categoria", MsgObrigatorio)
	}
	if in.Pessoa == nil {
		verr.Add("pessoa", MsgObrigatorio)
	}

	return verr.ErrOrNil()
}

// NewLancamento builds a Lancamento from a validated input. Categoria and
// Pessoa carry only their codigo.
func NewLancamento(in LancamentoInput) (*Lancamento, error) {
	l := &Lancamento{}
	if err := l.Apply(in); err != nil {
		return nil, err
	}
	return l, nil
}

// Apply replaces every writable field of l with the input (full replace).
// The identifier is never touched.
func (l *Lancamento) Apply(in LancamentoInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	l.Descricao = in.Descricao
	l.DataVencimento = *in.DataVencimento
	l.DataPagamento = in.DataPagamento
	l.Valor = *in.Valor
	l.Observacao = in.Observacao
	l.Tipo = in.Tipo
	l.Categoria = Categoria{Codigo: in.Categoria.Codigo}
	l.Pessoa = Pessoa{Codigo: in.Pessoa.Codigo}
	return nil
}

// LancamentoFilter narrows a lancamento search. Every criterion is
// optional and all present criteria must match.
type LancamentoFilter struct {
	// Descricao matches as a case-insensitive substring.
	Descricao string
	// DataVencimentoDe is an inclusive lower bound on the due date.
	DataVencimentoDe *Date
	// DataVencimentoAte is an inclusive upper bound on the due date.
	DataVencimentoAte *Date
}

// ResumoLancamento is the reduced projection returned by summaries, with
// the categoria and pessoa reduced to their names.
type ResumoLancamento struct {
	Codigo         int64
	Descricao      string
	DataVencimento Date
	DataPagamento  *Date
	Valor          decimal.Decimal
	Tipo           TipoLancamento
	Categoria      string
	Pessoa         string
}
