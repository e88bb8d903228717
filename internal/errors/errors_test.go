package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidInputCarriesField(t *testing.T) {
	err := InvalidInput("average_ticket", "must be greater than zero")

	assert.Equal(t, TypeInvalidInput, err.Type)
	assert.Equal(t, "[INVALID_INPUT] average_ticket must be greater than zero", err.Error())
	assert.Equal(t, "average_ticket", err.Context["field"])
}

func TestIsTypeFollowsWrappedChain(t *testing.T) {
	base := UnsupportedRegion("APAC")
	wrapped := fmt.Errorf("estimating cost: %w", base)
	outer := Internal("evaluate failed", wrapped)

	assert.True(t, IsType(wrapped, TypeUnsupportedRegion))
	assert.True(t, IsType(outer, TypeInternal))
	assert.True(t, IsType(outer, TypeUnsupportedRegion))
	assert.False(t, IsType(outer, TypeInvalidInput))
	assert.False(t, IsType(fmt.Errorf("plain"), TypeInternal))
	assert.False(t, IsType(nil, TypeInternal))
}

func TestAsAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("unexpected token")
	err := fmt.Errorf("loading: %w", Parsing("rate card", cause))

	e, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, TypeParsing, e.Type)
	assert.ErrorIs(t, e, cause)
	assert.Contains(t, e.Error(), "unexpected token")
}

func TestStdlibIsReachesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := fmt.Errorf("saving: %w", Wrap(TypeConfig, "failed to write config", cause))

	assert.True(t, stderrors.Is(err, cause))
	assert.False(t, stderrors.Is(err, fmt.Errorf("disk full")))
}
