package handlers

import (
	"net/http"

	"github.com/hirewire/hirewire/internal/auth"
	"github.com/hirewire/hirewire/internal/middleware"
	"github.com/hirewire/hirewire/internal/store"
	"github.com/hirewire/hirewire/internal/utils"
)

type AdminHandler struct {
	Store store.Store
}

// Overview is the read-only dump of all three entities. No admin mutation
// routes exist.
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if err := auth.Require(user, auth.CapAdminOverview); err != nil {
		forbidden(w)
		return
	}

	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		serverError(w, err, "list users")
		return
	}
	jobs, err := h.Store.ListJobs(r.Context(), store.JobFilter{})
	if err != nil {
		serverError(w, err, "list jobs")
		return
	}
	apps, err := h.Store.ListApplications(r.Context())
	if err != nil {
		serverError(w, err, "list applications")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"users":        users,
		"jobs":         jobs,
		"applications": apps,
	})
}
