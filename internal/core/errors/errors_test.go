package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "resource not found")
		assert.Equal(t, "[NOT_FOUND] resource not found", err.Error())
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeIO, "read failed")
		assert.Equal(t, "[IO_ERROR] read failed: original error", err.Error())
		assert.ErrorIs(t, err, original)
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeSyntax, "bad source")
		assert.True(t, IsCode(err, CodeSyntax))
		assert.False(t, IsCode(err, CodeNotFound))
	})

	t.Run("IsCodeThroughFmtWrap", func(t *testing.T) {
		err := fmt.Errorf("check file: %w", New(CodeSyntax, "bad source"))
		assert.True(t, IsCode(err, CodeSyntax))
		code, ok := CodeOf(err)
		require.True(t, ok)
		assert.Equal(t, CodeSyntax, code)
	})
}

func TestAddContext(t *testing.T) {
	err := AddContext(New(CodeSyntax, "bad source"), CtxPath, "pkg/mod.py")
	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "pkg/mod.py", de.Context[CtxPath])
	assert.Contains(t, err.Error(), "pkg/mod.py")

	plain := AddContext(errors.New("boom"), CtxOperation, "scan")
	assert.True(t, IsCode(plain, CodeInternal))

	_, ok := CodeOf(errors.New("plain"))
	assert.False(t, ok)
}
