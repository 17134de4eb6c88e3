package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hirewire/hirewire/internal/middleware"
	"github.com/hirewire/hirewire/internal/utils"
)

// Routes builds the full HTTP surface. Shared between main and the handler
// tests so both exercise the same middleware chain.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Public
	r.Get("/", h.Home)
	r.Post("/register", h.Auth.Register)
	r.Post("/login", h.Auth.Login)

	// Stored resumes, served back by filename
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(h.Uploads.Dir()))))

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(h.Store, h.opts.Secret))

		r.Get("/logout", h.Auth.Logout)
		r.Get("/dashboard", h.Jobs.Dashboard)

		r.Post("/post-job", h.Jobs.Create)
		r.Get("/my-jobs", h.Jobs.Mine)
		r.Post("/edit-job/{jobID}", h.Jobs.Edit)
		r.Get("/delete-job/{jobID}", h.Jobs.Delete)

		r.Post("/apply/{jobID}", h.Applications.Apply)
		r.Get("/job/{jobID}/applicants", h.Applications.Applicants)

		r.Get("/admin", h.Admin.Overview)
	})

	return r
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{
		"service": "hirewire",
		"status":  "ok",
	})
}
