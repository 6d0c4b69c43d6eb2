package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Post("/api/user/refresh-token", h.refreshToken)
	})

	// routes requiring a valid access token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/user/logout", h.logout)
		r.Post("/api/user/change-password", h.changePassword)
		r.Get("/api/user", h.getUser)
		r.Patch("/api/user", h.updateUser)
		r.Delete("/api/user", h.deleteUser)

		r.Route("/api/credentials", func(r chi.Router) {
			r.Post("/", h.createCredential)
			r.Get("/", h.listCredentials)
			r.Get("/{credentialID}", h.getCredential)
			r.Put("/{credentialID}", h.updateCredential)
			r.Delete("/{credentialID}", h.deleteCredential)
			r.Get("/{credentialID}/reveal", h.revealCredential)
		})

		r.Route("/api/platforms", func(r chi.Router) {
			r.Post("/", h.createPlatform)
			r.Get("/", h.listPlatforms)
			r.Get("/{platformID}", h.getPlatform)
			r.Put("/{platformID}", h.updatePlatform)
			r.Delete("/{platformID}", h.deletePlatform)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
