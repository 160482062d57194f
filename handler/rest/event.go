package rest

import (
	"net/http"

	"keeper/core"
	"keeper/handler/render"
	"keeper/handler/views"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

func eventsHandler(events core.EventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Currency string `schema:"currency"`
			Limit    int    `schema:"limit"`
		}

		if err := decoder.Decode(&params, r.URL.Query()); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Limit <= 0 {
			params.Limit = defaultEventLimit
		} else if params.Limit > maxEventLimit {
			params.Limit = maxEventLimit
		}

		list, err := events.List(r.Context(), params.Currency, params.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.List{Items: list, Limit: params.Limit})
	}
}
