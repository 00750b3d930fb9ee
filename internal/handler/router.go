package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires the portal routes. The management screen subtree is
// guarded by RequireSession; any unmatched path redirects to login.
func NewRouter(
	login *LoginHandler,
	customers *CustomerHandler,
	health *HealthHandler,
	guard func(http.Handler) http.Handler,
	middleware ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, m := range middleware {
		r.Use(m)
	}

	r.Get("/login", login.Show)
	r.Post("/login", login.Submit)
	r.Post("/logout", login.Logout)
	r.Get("/health", health.Health)

	r.Route("/customers", func(r chi.Router) {
		r.Use(guard)
		r.Get("/", customers.List)
		r.Get("/add", customers.ShowAdd)
		r.Post("/add", customers.SubmitAdd)
		r.Get("/edit/{id}", customers.ShowEdit)
		r.Post("/edit/{id}", customers.SubmitEdit)
		r.Get("/delete/{id}", customers.ShowDelete)
		r.Post("/delete/{id}", customers.SubmitDelete)
	})

	r.NotFound(RedirectToLogin)

	return r
}
