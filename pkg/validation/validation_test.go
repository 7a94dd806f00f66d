package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMatchesFieldAndCode(t *testing.T) {
	sentinel := New("price", "negative_price", "price must be non-negative")
	copied := New("price", "negative_price", "different wording")
	other := New("stock", "negative_price", "")

	assert.ErrorIs(t, copied, sentinel)
	assert.NotErrorIs(t, other, sentinel)
	assert.ErrorIs(t, fmt.Errorf("create: %w", sentinel), sentinel)
	assert.Equal(t, "negative_price", sentinel.Error())
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", New("name", "invalid_name", "name is required"))

	verr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "name", verr.Field)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}
