package rest

import (
	"net/http"

	"keeper/core"
	"keeper/handler/render"

	"github.com/go-chi/chi"
)

func priceHandler(prices core.PriceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Round int64 `schema:"round"`
		}

		if err := decoder.Decode(&params, r.URL.Query()); err != nil {
			render.BadRequest(w, err)
			return
		}

		var (
			currency = chi.URLParam(r, "currency")
			price    *core.Price
			err      error
		)

		if params.Round > 0 {
			price, err = prices.FindByRound(r.Context(), currency, params.Round)
		} else {
			price, err = prices.Latest(r.Context(), currency)
		}

		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, price)
	}
}
