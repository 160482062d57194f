package reporter

import (
	"context"
	"errors"
	"testing"
	"time"

	"keeper/core"
	"keeper/pkg/fixed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marketStore struct {
	core.MarketStore
}

func (s *marketStore) All(ctx context.Context) ([]*core.Market, error) {
	return []*core.Market{{Currency: "BTC"}, {Currency: "ETH"}, {Currency: "USD"}}, nil
}

type reportStore struct {
	reports []*core.PriceReport
}

func (s *reportStore) Create(ctx context.Context, report *core.PriceReport) error {
	s.reports = append(s.reports, report)
	return nil
}

func (s *reportStore) Latest(ctx context.Context, provider, source, currency string) (*core.PriceReport, bool, error) {
	for i := len(s.reports) - 1; i >= 0; i-- {
		r := s.reports[i]
		if r.Provider == provider && r.Source == source && r.Currency == currency {
			return r, true, nil
		}
	}
	return nil, false, nil
}

type blockService struct {
	core.BlockService
}

func (b *blockService) GetBlock(ctx context.Context, t time.Time) (int64, error) {
	return t.Unix() / 6, nil
}

type tickerSource struct {
	prices map[string]string
	pulls  int
}

func (s *tickerSource) Name() string {
	return "exchange"
}

func (s *tickerSource) PullPriceTicker(ctx context.Context, currency string, t time.Time) (*core.PriceTicker, error) {
	s.pulls++
	p, ok := s.prices[currency]
	if !ok {
		return nil, errors.New("404")
	}
	return &core.PriceTicker{Source: s.Name(), Currency: currency, Price: fixed.MustFromString(p)}, nil
}

func TestReportOncePerRound(t *testing.T) {
	reports := &reportStore{}
	source := &tickerSource{prices: map[string]string{"BTC": "30000", "ETH": "0"}}
	w := New("UTC", "@every 6s", "oracle-1", &marketStore{}, reports, &blockService{}, source)

	now := time.Unix(600, 0)
	w.now = func() time.Time { return now }

	require.Nil(t, w.onWork(context.Background()))
	require.Len(t, reports.reports, 1)

	r := reports.reports[0]
	assert.Equal(t, "oracle-1", r.Provider)
	assert.Equal(t, "exchange", r.Source)
	assert.Equal(t, "BTC", r.Currency)
	assert.Equal(t, int64(100), r.Round)
	assert.Equal(t, "30000", r.Price.String())
	assert.Equal(t, traceID("oracle-1", "exchange", "BTC", 100), r.TraceID)
	assert.Equal(t, 3, source.pulls)

	// same round again
	require.Nil(t, w.onWork(context.Background()))
	assert.Len(t, reports.reports, 1)
	assert.Equal(t, 5, source.pulls)

	now = now.Add(6 * time.Second)
	require.Nil(t, w.onWork(context.Background()))
	require.Len(t, reports.reports, 2)
	assert.Equal(t, int64(101), reports.reports[1].Round)
	assert.NotEqual(t, r.TraceID, reports.reports[1].TraceID)
}
