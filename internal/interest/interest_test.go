package interest

import (
	"testing"

	"keeper/core"
	"keeper/pkg/fixed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func n(s string) fixed.Number {
	return fixed.MustFromString(s)
}

func TestUtilizationRate(t *testing.T) {
	t.Run("zero borrows", func(t *testing.T) {
		rate, err := UtilizationRate(n("100"), fixed.Zero(), n("1000"))
		require.Nil(t, err)
		assert.True(t, rate.IsZero())
	})

	t.Run("normal", func(t *testing.T) {
		rate, err := UtilizationRate(n("100"), n("50"), n("50"))
		require.Nil(t, err)
		assert.Equal(t, "0.5", rate.String())
	})

	t.Run("reserves exceed pool", func(t *testing.T) {
		_, err := UtilizationRate(n("10"), n("10"), n("30"))
		assert.ErrorIs(t, err, core.ErrArithmeticOverflow)
	})

	t.Run("empty pool", func(t *testing.T) {
		_, err := UtilizationRate(n("0"), n("10"), n("10"))
		assert.ErrorIs(t, err, core.ErrArithmeticOverflow)
	})
}

func TestJumpRateModel(t *testing.T) {
	model, err := JumpRateModel(n("5.256"), n("5.256"), n("10.512"), n("0.5"))
	require.Nil(t, err)

	assert.Equal(t, "0.000001", model.BaseRatePerBlock.String())
	assert.Equal(t, "0.000002", model.MultiplierPerBlock.String())
	assert.Equal(t, "0.000002", model.JumpMultiplierPerBlock.String())
	assert.Equal(t, "0.5", model.Kink.String())

	_, err = JumpRateModel(n("0.02"), n("0.1"), n("1"), fixed.Zero())
	assert.ErrorIs(t, err, fixed.ErrDivisionByZero)
}

func TestBorrowRate(t *testing.T) {
	base, multiplier, jump, kink := fixed.Zero(), n("2"), n("5"), n("0.8")

	t.Run("continuous at kink", func(t *testing.T) {
		rate, err := BorrowRate(kink, base, multiplier, jump, kink)
		require.Nil(t, err)
		assert.Equal(t, "1.6", rate.String())
	})

	t.Run("below kink", func(t *testing.T) {
		rate, err := BorrowRate(n("0.5"), n("0.1"), multiplier, jump, kink)
		require.Nil(t, err)
		assert.Equal(t, "1.1", rate.String())
	})

	t.Run("above kink", func(t *testing.T) {
		rate, err := BorrowRate(n("0.9"), base, multiplier, jump, kink)
		require.Nil(t, err)
		assert.Equal(t, "2.1", rate.String())
	})
}

func TestSupplyRate(t *testing.T) {
	rate, err := SupplyRate(n("0.5"), n("0.2"), n("0.1"))
	require.Nil(t, err)
	assert.Equal(t, "0.09", rate.String())

	rate, err = SupplyRate(n("0.5"), n("0.2"), n("1.5"))
	require.Nil(t, err)
	assert.True(t, rate.IsZero())
}

func TestExchangeRate(t *testing.T) {
	rate, err := ExchangeRate(n("100"), n("50"), n("100"))
	require.Nil(t, err)
	assert.Equal(t, "1.5", rate.String())

	_, err = ExchangeRate(n("100"), n("50"), fixed.Zero())
	assert.ErrorIs(t, err, core.ErrCalcExchangeRateFailed)

	_, err = ExchangeRate(n("340000000000000000000"), n("340000000000000000000"), n("1"))
	assert.ErrorIs(t, err, core.ErrCalcAccrueInterestFailed)
}

func TestBorrowBalance(t *testing.T) {
	balance, err := BorrowBalance(n("100"), n("1.1"), n("1"))
	require.Nil(t, err)
	assert.Equal(t, "110", balance.String())

	balance, err = BorrowBalance(fixed.Zero(), n("1.1"), n("1"))
	require.Nil(t, err)
	assert.True(t, balance.IsZero())

	balance, err = BorrowBalance(n("100"), n("1.1"), fixed.Zero())
	require.Nil(t, err)
	assert.Equal(t, "100", balance.String())
}

func TestPerYear(t *testing.T) {
	apy, err := PerYear(n("0.000001"))
	require.Nil(t, err)
	assert.Equal(t, "5.256", apy.String())
}
