// Package domain defines the core business entities of the payments API
// (Pessoa, Categoria, Lancamento, Usuario), the inputs clients may write,
// and the validation rules those inputs must satisfy before anything is
// persisted.
package domain
