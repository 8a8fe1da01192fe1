package domain

import "fmt"

// Endereco is the postal address of a Pessoa. It is a value object: an
// update always replaces all four fields together.
type Endereco struct {
	Logradouro string `json:"logradouro" validate:"required,max=100"`
	Cidade     string `json:"cidade" validate:"required,max=50"`
	Estado     string `json:"estado" validate:"required,max=50"`
	Cep        string `json:"cep" validate:"required,max=10"`
}

// Pessoa is a person that can be the counterparty of a Lancamento.
type Pessoa struct {
	Codigo   int64    `json:"codigo"`
	Nome     string   `json:"nome"`
	Ativo    bool     `json:"ativo"`
	Endereco Endereco `json:"endereco"`
}

// PessoaInput carries the client-writable fields of a Pessoa. Ativo is a
// pointer so an absent value can be told apart from false.
type PessoaInput struct {
	Nome     string    `json:"nome" validate:"required,min=3,max=50"`
	Ativo    *bool     `json:"ativo" validate:"required"`
	Endereco *Endereco `json:"endereco"`
}

// ValidateForCreate checks every rule, including the mandatory address.
func (in PessoaInput) ValidateForCreate() error {
	verr := validateStruct(in)
	if in.Endereco == nil {
		verr.Add("endereco", MsgObrigatorio)
	}
	return verr.ErrOrNil()
}

// ValidateForUpdate checks the input of a full update. The address may be
// omitted, but when present all of its fields are required.
func (in PessoaInput) ValidateForUpdate() error {
	return validateStruct(in).ErrOrNil()
}

// NewPessoa builds a Pessoa from a validated create input.
func NewPessoa(in PessoaInput) (*Pessoa, error) {
	if err := in.ValidateForCreate(); err != nil {
		return nil, err
	}

	return &Pessoa{
		Nome:     in.Nome,
		Ativo:    *in.Ativo,
		Endereco: *in.Endereco,
	}, nil
}

// Apply merges an update input into p. Nome and Ativo are always replaced;
// the address is replaced wholesale only when the input carries one.
// The identifier is never touched.
func (p *Pessoa) Apply(in PessoaInput) error {
	if err := in.ValidateForUpdate(); err != nil {
		return err
	}

	p.Nome = in.Nome
	p.Ativo = *in.Ativo
	if in.Endereco != nil {
		p.Endereco = *in.Endereco
	}
	return nil
}

// SetAtivo changes the active flag. It fails with ErrAtivoUnchanged when
// the flag already holds the requested value.
func (p *Pessoa) SetAtivo(ativo bool) error {
	if p.Ativo == ativo {
		return fmt.Errorf("%w: %t", ErrAtivoUnchanged, ativo)
	}
	p.Ativo = ativo
	return nil
}

// IsInativo reports whether the pessoa is inactive.
func (p *Pessoa) IsInativo() bool {
	return !p.Ativo
}
