package service_test

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/pagamentos-api/internal/domain"
	"github.com/phrazzld/pagamentos-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTxDB returns a sqlmock-backed *sql.DB for services that open
// transactions. Stores are mocked separately, so only BEGIN, COMMIT and
// ROLLBACK are expected on it.
func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

// expectTx registers one transaction that ends in COMMIT or ROLLBACK.
func expectTx(sqlMock sqlmock.Sqlmock, commit bool) {
	sqlMock.ExpectBegin()
	if commit {
		sqlMock.ExpectCommit()
	} else {
		sqlMock.ExpectRollback()
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func enderecoPadrao() *domain.Endereco {
	return &domain.Endereco{
		Logradouro: "Rua do Abacaxi, 10",
		Cidade:     "Uberlândia",
		Estado:     "MG",
		Cep:        "38.400-121",
	}
}

// requireServiceError asserts err is a *service.ServiceError wrapping kind
// and returns it.
func requireServiceError(t *testing.T, err error, kind error) *service.ServiceError {
	t.Helper()

	require.Error(t, err)
	require.ErrorIs(t, err, kind)
	var serviceErr *service.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	return serviceErr
}

// requireValidationError asserts err is a *domain.ValidationError and
// returns it.
func requireValidationError(t *testing.T, err error) *domain.ValidationError {
	t.Helper()

	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrValidation)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr
}
