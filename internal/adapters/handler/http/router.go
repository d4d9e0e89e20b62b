package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(electionHandler *ElectionHandler, adminHandler *AdminHandler, jwtSecret []byte) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/votes", electionHandler.CastVote)
		r.Get("/results", electionHandler.GetResults)
		r.Get("/ballots/{digest}", electionHandler.VerifyBallot)
		r.Get("/stats", electionHandler.GetStats)

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminOnly(jwtSecret))
			r.Post("/voters", adminHandler.RegisterVoters)
			r.Post("/codes", adminHandler.IssueCodes)
			r.Post("/undo", adminHandler.Undo)
			r.Get("/audit", adminHandler.AuditTrail)
		})
	})

	return r
}
