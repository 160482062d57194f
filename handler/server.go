package handler

import (
	"net/http"

	"keeper/core"
	"keeper/handler/render"
	"keeper/handler/rest"

	"github.com/go-chi/chi"
)

// Server server
type Server struct {
	stores       rest.Stores
	liquidations core.LiquidationService
}

// New new server function
func New(stores rest.Stores, liquidations core.LiquidationService) Server {
	return Server{
		stores:       stores,
		liquidations: liquidations,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(render.WrapResponse(true))
	r.Mount("/", rest.Handle(s.stores, s.liquidations))
	return r
}
