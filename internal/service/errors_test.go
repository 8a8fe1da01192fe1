package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceError(t *testing.T) {
	t.Parallel()

	t.Run("wraps sentinel", func(t *testing.T) {
		t.Parallel()
		err := NewServiceError("delete_pessoa", msgPessoaEmUso, ErrConflict)

		assert.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, "service delete_pessoa failed: Pessoa em uso e não pode ser removida: resource in use", err.Error())
	})

	t.Run("without cause", func(t *testing.T) {
		t.Parallel()
		err := NewServiceError("list_pessoas", "failed", nil)

		assert.Equal(t, "service list_pessoas failed: failed", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})
}
