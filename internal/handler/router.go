package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	custommiddleware "github.com/mmeshcher/beer-mile/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса пивной гонки.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(custommiddleware.RequestID)
	r.Use(custommiddleware.Logger(h.logger))
	r.Use(custommiddleware.GzipMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", h.GetCatalog)

		r.Post("/drivers", h.Register)
		r.Get("/drivers", h.ListDrivers)

		r.Post("/events/beer", h.LogBeer)
		r.Post("/events/penalty", h.LogPenalty)

		r.Get("/standings", h.GetStandings)
		r.Get("/standings/track", h.GetTrack)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
