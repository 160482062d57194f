package rest

import (
	"net/http"

	"keeper/core"
	"keeper/handler/render"

	"github.com/go-chi/chi"
	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// Stores read only stores used by the rest api
type Stores struct {
	Markets  core.MarketStore
	Borrows  core.BorrowStore
	Deposits core.DepositStore
	Prices   core.PriceStore
	Events   core.EventStore
}

// Handle handle rest api request
func Handle(stores Stores, liquidations core.LiquidationService) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, "not found")
	})

	router.Get("/markets", allMarketsHandler(stores))
	router.Get("/markets/{currency}", marketHandler(stores))
	router.Get("/prices/{currency}", priceHandler(stores.Prices))
	router.Get("/events", eventsHandler(stores.Events))
	router.Get("/accounts/{account}", accountHandler(liquidations))
	router.Get("/liquidations/preview", previewHandler(liquidations))

	return router
}
