package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"keeper/core"
	"keeper/pkg/fixed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marketStore struct {
	core.MarketStore
	markets []*core.Market
}

func (s *marketStore) All(ctx context.Context) ([]*core.Market, error) {
	return s.markets, nil
}

func (s *marketStore) Find(ctx context.Context, currency string) (*core.Market, error) {
	for _, m := range s.markets {
		if m.Currency == currency {
			return m, nil
		}
	}
	return nil, core.ErrMarketNotFound
}

type borrowStore struct {
	core.BorrowStore
}

func (s *borrowStore) CountOfBorrowers(ctx context.Context, currency string) (int64, error) {
	return 3, nil
}

type depositStore struct {
	core.DepositStore
}

func (s *depositStore) CountOfSuppliers(ctx context.Context, currency string) (int64, error) {
	return 7, nil
}

type priceStore struct {
	core.PriceStore
}

func (s *priceStore) Latest(ctx context.Context, currency string) (*core.Price, error) {
	if currency != "BTC" {
		return nil, core.ErrPriceNotFound
	}
	return &core.Price{Currency: currency, Round: 9, Price: fixed.MustFromString("30000")}, nil
}

func (s *priceStore) FindByRound(ctx context.Context, currency string, round int64) (*core.Price, error) {
	return &core.Price{Currency: currency, Round: round, Price: fixed.MustFromString("29000")}, nil
}

type eventStore struct {
	currency string
	limit    int
}

func (s *eventStore) Create(ctx context.Context, event *core.Event) error {
	return nil
}

func (s *eventStore) List(ctx context.Context, currency string, limit int) ([]*core.Event, error) {
	s.currency, s.limit = currency, limit
	return []*core.Event{{Kind: core.EventBorrowRateUpdated, Currency: currency}}, nil
}

type liquidationService struct {
	core.LiquidationService
}

func (s *liquidationService) Plan(ctx context.Context) ([]*core.Liquidation, error) {
	return nil, nil
}

func (s *liquidationService) ValuateAccount(ctx context.Context, account string) (*core.Valuations, error) {
	return &core.Valuations{
		Borrows: map[string]*core.AccountValuation{
			account: {Account: account, Total: fixed.FromInt(100)},
		},
		Collaterals: map[string]*core.AccountValuation{},
	}, nil
}

func newHandler() (http.Handler, *eventStore) {
	events := &eventStore{}
	stores := Stores{
		Markets: &marketStore{markets: []*core.Market{{
			Currency:   "BTC",
			BorrowRate: fixed.MustFromString("0.000001"),
			SupplyRate: fixed.MustFromString("0.0000005"),
		}}},
		Borrows:  &borrowStore{},
		Deposits: &depositStore{},
		Prices:   &priceStore{},
		Events:   events,
	}

	return Handle(stores, &liquidationService{}), events
}

func get(h http.Handler, target string, v interface{}) int {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	if v != nil {
		_ = json.Unmarshal(w.Body.Bytes(), v)
	}
	return w.Code
}

func TestMarkets(t *testing.T) {
	h, _ := newHandler()

	var markets []map[string]interface{}
	require.Equal(t, http.StatusOK, get(h, "/markets", &markets))
	require.Len(t, markets, 1)
	assert.Equal(t, "BTC", markets[0]["currency"])
	assert.Equal(t, "5.256", markets[0]["borrow_apy"])
	assert.Equal(t, "2.628", markets[0]["supply_apy"])
	assert.Equal(t, float64(7), markets[0]["suppliers"])
	assert.Equal(t, float64(3), markets[0]["borrowers"])

	var market map[string]interface{}
	require.Equal(t, http.StatusOK, get(h, "/markets/BTC", &market))
	assert.Equal(t, "BTC", market["currency"])

	var resp struct {
		Code int `json:"code"`
	}
	require.Equal(t, http.StatusNotFound, get(h, "/markets/DOGE", &resp))
	assert.Equal(t, int(core.ErrCodeMarketNotFound), resp.Code)
}

func TestPrices(t *testing.T) {
	h, _ := newHandler()

	var price core.Price
	require.Equal(t, http.StatusOK, get(h, "/prices/BTC", &price))
	assert.Equal(t, int64(9), price.Round)
	assert.Equal(t, "30000", price.Price.String())

	require.Equal(t, http.StatusOK, get(h, "/prices/BTC?round=5", &price))
	assert.Equal(t, int64(5), price.Round)
	assert.Equal(t, "29000", price.Price.String())

	assert.Equal(t, http.StatusNotFound, get(h, "/prices/ETH", nil))
	assert.Equal(t, http.StatusBadRequest, get(h, "/prices/BTC?round=abc", nil))
}

func TestEvents(t *testing.T) {
	h, events := newHandler()

	var list struct {
		Items []*core.Event `json:"items"`
		Limit int           `json:"limit"`
	}
	require.Equal(t, http.StatusOK, get(h, "/events?currency=BTC", &list))
	assert.Equal(t, defaultEventLimit, list.Limit)
	assert.Equal(t, "BTC", events.currency)
	require.Len(t, list.Items, 1)
	assert.Equal(t, core.EventBorrowRateUpdated, list.Items[0].Kind)

	require.Equal(t, http.StatusOK, get(h, "/events?limit=10000", &list))
	assert.Equal(t, maxEventLimit, events.limit)
}

func TestAccountAndPreview(t *testing.T) {
	h, _ := newHandler()

	var valuations core.Valuations
	require.Equal(t, http.StatusOK, get(h, "/accounts/alice", &valuations))
	require.Contains(t, valuations.Borrows, "alice")
	assert.Equal(t, "100", valuations.Borrows["alice"].Total.String())

	var preview struct {
		Liquidations []*core.Liquidation `json:"liquidations"`
		Count        int                 `json:"count"`
	}
	require.Equal(t, http.StatusOK, get(h, "/liquidations/preview", &preview))
	assert.NotNil(t, preview.Liquidations)
	assert.Equal(t, 0, preview.Count)
}

func TestNotFound(t *testing.T) {
	h, _ := newHandler()
	assert.Equal(t, http.StatusNotFound, get(h, "/unknown", nil))
}
