package routes

import (
	"github.com/AnshRaj112/aih-backend/internal/handlers"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r chi.Router, h *handlers.Handler) {
	r.Get("/", h.Home)
	r.Get("/health", h.Health)

	// Account routes
	r.Get("/register", h.RegisterInfo)
	r.Post("/register", h.Register)
	r.Get("/login", h.LoginInfo)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/me", h.Me)

	// Symptom catalog
	r.Post("/analyze", h.Analyze)
	r.Get("/symptoms", h.ListSymptoms)
	r.Get("/symptoms/{name}", h.GetSymptom)
}
