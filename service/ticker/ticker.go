package ticker

import (
	"context"
	"fmt"
	"time"

	"keeper/core"
	"keeper/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
)

type source struct {
	name     string
	endpoint string
}

// New ticker source pulling prices from an http endpoint
func New(name, endpoint string) core.TickerSource {
	return &source{
		name:     name,
		endpoint: endpoint,
	}
}

func (s *source) Name() string {
	return s.name
}

// PullPriceTicker pull price ticker
func (s *source) PullPriceTicker(ctx context.Context, currency string, t time.Time) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s?ts=%d", s.endpoint, currency, t.UTC().Unix())
	logger.FromContext(ctx).Debugln("pull price:", url)

	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return nil, err
	}

	ticker.Source = s.name
	ticker.Currency = currency
	return &ticker, nil
}
