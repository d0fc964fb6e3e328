package session

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Get("/{id}", h.GetSession)
		r.Delete("/{id}", h.DeleteSession)
		r.Post("/{id}/files", h.UploadFiles)
		r.Post("/{id}/ask", h.Ask)
		r.Post("/{id}/clear", h.Clear)
		r.Get("/{id}/messages", h.ListMessages)
		r.Get("/{id}/transcript", h.GetTranscript)
	})
}
