// Package mocks holds the test doubles shared by the service, api and
// cmd/server tests.
//
// Store doubles (TestifyMockPessoaStore, TestifyMockCategoriaStore,
// TestifyMockLancamentoStore, TestifyMockUsuarioStore) and service doubles
// (MockPessoaService, MockCategoriaService, MockLancamentoService) embed
// testify's mock.Mock:
//
//	pessoas := &mocks.TestifyMockPessoaStore{}
//	pessoas.On("GetByID", mock.Anything, int64(1)).
//	    Return(&domain.Pessoa{Codigo: 1, Nome: "Maria"}, nil)
//
// A store double's WithTx returns the double itself, so code running inside
// store.RunInTransaction hits the same expectations.
//
// MockJWTService, MockAuthenticator and MockPasswordVerifier are configured
// through plain fields (canned results or Fn overrides) and record calls.
package mocks
