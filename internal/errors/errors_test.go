package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	cause := errors.New("disk full")
	err := IO("reading file", cause)
	assert.Equal(t, "IO: reading file: disk full", err.Error())
	assert.Equal(t, "IO", err.Code())
}

func TestErrorIsByKind(t *testing.T) {
	a := NotFound("no such project")
	b := NotFound("different message, same kind")
	assert.True(t, errors.Is(a, b))

	c := IO("boom", nil)
	assert.False(t, errors.Is(a, c))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := fmt.Errorf("calling embedder: %w", External("embed call failed", cause))
	assert.ErrorIs(t, wrapped, cause)
}

func TestIsRetryable(t *testing.T) {
	require.True(t, IsRetryable(External("timeout", nil)))
	require.True(t, IsRetryable(IO("read failed", nil)))
	require.False(t, IsRetryable(InvalidQuery("bad regex", nil)))
	require.False(t, IsRetryable(nil))
}

func TestToEnvelope(t *testing.T) {
	env := ToEnvelope(StoreIntegrity("corrupt db", errors.New("disk error")))
	assert.Equal(t, "STORE_INTEGRITY", env.Code)
	assert.Equal(t, "corrupt db", env.Message)
	assert.Equal(t, "disk error", env.Cause)
}
