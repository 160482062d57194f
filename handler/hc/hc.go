package hc

import (
	"net/http"
	"time"

	"keeper/core"
	"keeper/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle health check with version, uptime and the current round
func Handle(ver string, blocks core.BlockService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, blocks))
	return r
}

func handle(version string, blocks core.BlockService) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		round, err := blocks.CurrentBlock(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"uptime":  time.Since(b).Truncate(time.Millisecond).String(),
			"version": version,
			"round":   round,
		})
	}
}
