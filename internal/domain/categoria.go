package domain

// Categoria classifies lancamentos.
type Categoria struct {
	Codigo int64  `json:"codigo"`
	Nome   string `json:"nome"`
}

// CategoriaInput carries the client-writable fields of a Categoria.
type CategoriaInput struct {
	Nome string `json:"nome" validate:"required,min=3,max=50"`
}

// Validate checks the input rules.
func (in CategoriaInput) Validate() error {
	return validateStruct(in).ErrOrNil()
}

// NewCategoria builds a Categoria from a validated input.
func NewCategoria(in CategoriaInput) (*Categoria, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &Categoria{Nome: in.Nome}, nil
}

// Apply replaces the name of c.
func (c *Categoria) Apply(in CategoriaInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	c.Nome = in.Nome
	return nil
}
