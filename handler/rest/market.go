package rest

import (
	"context"
	"net/http"

	"keeper/core"
	"keeper/handler/render"
	"keeper/handler/views"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
)

func allMarketsHandler(stores Stores) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		markets, err := stores.Markets.All(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		marketViews := make([]*views.Market, 0, len(markets))
		for _, m := range markets {
			marketViews = append(marketViews, marketView(ctx, stores, m))
		}

		render.JSON(w, marketViews)
	}
}

func marketHandler(stores Stores) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		market, err := stores.Markets.Find(ctx, chi.URLParam(r, "currency"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, marketView(ctx, stores, market))
	}
}

func marketView(ctx context.Context, stores Stores, market *core.Market) *views.Market {
	log := logger.FromContext(ctx).WithField("currency", market.Currency)

	suppliers, err := stores.Deposits.CountOfSuppliers(ctx, market.Currency)
	if err != nil {
		log.WithError(err).Warnln("deposits.CountOfSuppliers")
	}

	borrowers, err := stores.Borrows.CountOfBorrowers(ctx, market.Currency)
	if err != nil {
		log.WithError(err).Warnln("borrows.CountOfBorrowers")
	}

	return views.MarketView(market, suppliers, borrowers)
}
