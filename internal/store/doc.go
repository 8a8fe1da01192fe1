// Package store declares the persistence contracts for pessoas, categorias,
// lancamentos and usuarios, together with the sentinel errors every
// implementation returns. The postgres package provides the implementations.
//
// Every store exposes WithTx so a service can run several calls in one
// transaction through RunInTransaction.
package store
