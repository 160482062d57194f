package market

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"keeper/core"
	"keeper/pkg/fixed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marketStore struct {
	markets map[string]*core.Market
}

func (s *marketStore) Create(ctx context.Context, market *core.Market) error {
	s.markets[market.Currency] = market
	return nil
}

func (s *marketStore) Find(ctx context.Context, currency string) (*core.Market, error) {
	m, ok := s.markets[currency]
	if !ok {
		return nil, core.ErrMarketNotFound
	}

	clone := *m
	return &clone, nil
}

func (s *marketStore) All(ctx context.Context) ([]*core.Market, error) {
	var markets []*core.Market
	for _, m := range s.markets {
		markets = append(markets, m)
	}

	return markets, nil
}

func (s *marketStore) UpdateRateModel(ctx context.Context, market *core.Market, model core.RateModel, at time.Time) error {
	m := s.markets[market.Currency]
	m.BaseRatePerYear = model.BaseRatePerYear
	m.MultiplierPerYear = model.MultiplierPerYear
	m.JumpMultiplierPerYear = model.JumpMultiplierPerYear
	m.Kink = model.Kink
	m.BaseRatePerBlock = model.BaseRatePerBlock
	m.MultiplierPerBlock = model.MultiplierPerBlock
	m.JumpMultiplierPerBlock = model.JumpMultiplierPerBlock
	m.RateModelAt = sql.NullTime{Time: at, Valid: true}
	return nil
}

func (s *marketStore) UpdateRates(ctx context.Context, market *core.Market, rates core.Rates) error {
	m := s.markets[market.Currency]
	if rates.UtilizationRate != nil {
		m.UtilizationRate = *rates.UtilizationRate
	}
	if rates.BorrowRate != nil {
		m.BorrowRate = *rates.BorrowRate
	}
	if rates.SupplyRate != nil {
		m.SupplyRate = *rates.SupplyRate
	}
	if rates.ExchangeRate != nil {
		m.ExchangeRate = *rates.ExchangeRate
	}

	return nil
}

type notification struct {
	kind     core.EventKind
	currency string
	payload  interface{}
}

type notifier struct {
	notifications []notification
}

func (n *notifier) Notify(ctx context.Context, kind core.EventKind, currency string, payload interface{}) error {
	n.notifications = append(n.notifications, notification{kind, currency, payload})
	return nil
}

func (n *notifier) kinds() []core.EventKind {
	var kinds []core.EventKind
	for _, item := range n.notifications {
		kinds = append(kinds, item.kind)
	}

	return kinds
}

func num(s string) fixed.Number {
	return fixed.MustFromString(s)
}

func newService() (*service, *marketStore, *notifier) {
	markets := &marketStore{markets: map[string]*core.Market{
		"BTC": {
			Currency:     "BTC",
			TotalCash:    num("100"),
			TotalBorrows: num("50"),
			TotalShares:  num("100"),
		},
	}}
	n := &notifier{}
	s := New(markets, n).(*service)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s, markets, n
}

func TestUpdateJumpRateModel(t *testing.T) {
	ctx := context.Background()
	s, markets, n := newService()

	require.Nil(t, s.UpdateJumpRateModel(ctx, "BTC", num("5.256"), num("5.256"), num("10.512"), num("0.5")))

	m := markets.markets["BTC"]
	assert.True(t, m.HasRateModel())
	assert.Equal(t, "0.000001", m.BaseRatePerBlock.String())
	assert.Equal(t, "0.000002", m.MultiplierPerBlock.String())
	assert.Equal(t, "0.000002", m.JumpMultiplierPerBlock.String())
	assert.Equal(t, "10.512", m.JumpMultiplierPerYear.String())
	assert.Equal(t, []core.EventKind{core.EventRateModelUpdated}, n.kinds())

	err := s.UpdateJumpRateModel(ctx, "BTC", num("1"), num("1"), num("1"), fixed.Zero())
	assert.ErrorIs(t, err, core.ErrRateComputationFailed)
	assert.Equal(t, "0.5", m.Kink.String(), "failed update keeps the previous model")
	assert.Len(t, n.notifications, 1)

	err = s.UpdateJumpRateModel(ctx, "ETH", num("1"), num("1"), num("1"), num("0.8"))
	assert.ErrorIs(t, err, core.ErrMarketNotFound)
}

func TestUpdateBorrowRate(t *testing.T) {
	ctx := context.Background()
	s, markets, n := newService()

	err := s.UpdateBorrowRate(ctx, "BTC", num("100"), num("50"), fixed.Zero())
	assert.ErrorIs(t, err, core.ErrRateModelNotSet, "no implicit zero rate model")

	m := markets.markets["BTC"]
	m.RateModelAt = sql.NullTime{Time: time.Now(), Valid: true}
	m.BaseRatePerBlock = fixed.Zero()
	m.MultiplierPerBlock = num("2")
	m.JumpMultiplierPerBlock = num("5")
	m.Kink = num("0.8")

	require.Nil(t, s.UpdateBorrowRate(ctx, "BTC", num("20"), num("80"), fixed.Zero()))
	assert.Equal(t, "0.8", m.UtilizationRate.String())
	assert.Equal(t, "1.6", m.BorrowRate.String())
	assert.Equal(t, []core.EventKind{core.EventUtilizationUpdated, core.EventBorrowRateUpdated}, n.kinds())

	err = s.UpdateBorrowRate(ctx, "BTC", num("10"), num("10"), num("30"))
	assert.ErrorIs(t, err, core.ErrRateComputationFailed)
	assert.Equal(t, "1.6", m.BorrowRate.String(), "failed update keeps the previous rate")
	assert.Equal(t, "0.8", m.UtilizationRate.String())
	assert.Len(t, n.notifications, 2)

	// utilization is fine, the curve overflows
	m.BaseRatePerBlock = num("200000000000000000000")
	m.MultiplierPerBlock = num("300000000000000000000")
	err = s.UpdateBorrowRate(ctx, "BTC", num("20"), num("80"), fixed.Zero())
	assert.ErrorIs(t, err, core.ErrRateComputationFailed)
	assert.Equal(t, "1.6", m.BorrowRate.String())
	assert.Len(t, n.notifications, 2)
}

func TestUpdateSupplyRate(t *testing.T) {
	ctx := context.Background()
	s, markets, n := newService()

	m := markets.markets["BTC"]
	m.RateModelAt = sql.NullTime{Time: time.Now(), Valid: true}
	m.BorrowRate = num("0.2")

	require.Nil(t, s.UpdateSupplyRate(ctx, "BTC", num("50"), num("50"), fixed.Zero(), num("0.1")))
	assert.Equal(t, "0.09", m.SupplyRate.String())
	assert.Equal(t, []core.EventKind{core.EventSupplyRateUpdated}, n.kinds())

	err := s.UpdateSupplyRate(ctx, "BTC", num("0"), num("50"), num("60"), num("0.1"))
	assert.ErrorIs(t, err, core.ErrRateComputationFailed)
	assert.Equal(t, "0.09", m.SupplyRate.String())
}

func TestCalcExchangeRate(t *testing.T) {
	ctx := context.Background()
	s, markets, n := newService()

	rate, err := s.CalcExchangeRate(ctx, "BTC")
	require.Nil(t, err)
	assert.Equal(t, "1.5", rate.String())
	assert.Equal(t, "1.5", markets.markets["BTC"].ExchangeRate.String())
	assert.Equal(t, []core.EventKind{core.EventExchangeRateUpdated}, n.kinds())

	markets.markets["BTC"].TotalShares = fixed.Zero()
	_, err = s.CalcExchangeRate(ctx, "BTC")
	assert.ErrorIs(t, err, core.ErrCalcExchangeRateFailed)
	assert.Equal(t, "1.5", markets.markets["BTC"].ExchangeRate.String())

	markets.markets["BTC"].TotalShares = num("1")
	markets.markets["BTC"].TotalCash = num("340000000000000000000")
	markets.markets["BTC"].TotalBorrows = num("340000000000000000000")
	_, err = s.CalcExchangeRate(ctx, "BTC")
	assert.ErrorIs(t, err, core.ErrCalcAccrueInterestFailed)
	assert.Equal(t, "1.5", markets.markets["BTC"].ExchangeRate.String())
	assert.Len(t, n.notifications, 1)
}
