package ticker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPullPriceTicker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/tickers/BTC" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":404,"msg":"ticker not found"}`))
			return
		}

		assert.Equal(t, "1700000000", r.URL.Query().Get("ts"))
		_, _ = w.Write([]byte(`{"price":"35000.5"}`))
	}))
	defer server.Close()

	s := New("exchange", server.URL)
	assert.Equal(t, "exchange", s.Name())

	ticker, err := s.PullPriceTicker(context.Background(), "BTC", time.Unix(1700000000, 0))
	require.Nil(t, err)
	assert.Equal(t, "35000.5", ticker.Price.String())
	assert.Equal(t, "exchange", ticker.Source)
	assert.Equal(t, "BTC", ticker.Currency)

	_, err = s.PullPriceTicker(context.Background(), "ETH", time.Unix(1700000000, 0))
	assert.EqualError(t, err, "ticker not found")
}
