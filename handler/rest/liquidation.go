package rest

import (
	"net/http"

	"keeper/core"
	"keeper/handler/render"
	"keeper/handler/views"

	"github.com/go-chi/chi"
)

func accountHandler(liquidations core.LiquidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		valuations, err := liquidations.ValuateAccount(r.Context(), chi.URLParam(r, "account"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, valuations)
	}
}

func previewHandler(liquidations core.LiquidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		planned, err := liquidations.Plan(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		if planned == nil {
			planned = []*core.Liquidation{}
		}

		render.JSON(w, views.Preview{Liquidations: planned, Count: len(planned)})
	}
}
