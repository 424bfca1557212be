package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePromoKind(t *testing.T) {
	kind, err := ParsePromoKind("Percent", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Equal(t, Percent{Value: decimal.NewFromInt(10)}, kind)
	assert.Equal(t, "percent", kind.Name())

	kind, err = ParsePromoKind("fixed", decimal.RequireFromString("499.6"))
	require.NoError(t, err)
	assert.Equal(t, Fixed{Amount: 500}, kind)
	assert.True(t, PromoValue(kind).Equal(decimal.NewFromInt(500)))

	_, err = ParsePromoKind("bogo", decimal.NewFromInt(1))
	assert.Error(t, err)
}

func TestNormalizePromoCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizePromoCode("  save10 "))
	assert.Equal(t, "", NormalizePromoCode("   "))
}

func TestCartCountAndClone(t *testing.T) {
	c := Cart{"a": 2, "b": 3}
	clone := c.Clone()
	clone["a"] = 10

	assert.Equal(t, 5, c.Count())
	assert.Equal(t, 2, c["a"])
}
