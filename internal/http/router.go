package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/pocket/internal/http/auth"
	"github.com/MrJamesThe3rd/pocket/internal/http/currency"
	"github.com/MrJamesThe3rd/pocket/internal/http/ledger"
	"github.com/MrJamesThe3rd/pocket/internal/http/market"
	"github.com/MrJamesThe3rd/pocket/internal/http/widgets"
)

func New(
	verifier *auth.Verifier,
	ledgerV1 *ledger.Handler,
	currencyV1 *currency.Handler,
	widgetsV1 *widgets.Handler,
	marketV1 *market.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/ledger", func(r chi.Router) {
			ledgerV1.Routes(r)

			r.Group(func(r chi.Router) {
				r.Use(verifier.Middleware)
				ledgerV1.MutationRoutes(r)
			})
		})

		r.Route("/currency", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			currencyV1.Routes(r)
		})

		r.Route("/widgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			widgetsV1.Routes(r)
		})

		r.Route("/market", marketV1.Routes)
	})

	return router
}
