package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hirewire/hirewire/internal/auth"
	"github.com/hirewire/hirewire/internal/middleware"
	"github.com/hirewire/hirewire/internal/models"
	"github.com/hirewire/hirewire/internal/store"
	"github.com/hirewire/hirewire/internal/utils"
)

type JobHandler struct {
	Store store.Store
}

type jobForm struct {
	Title       string `validate:"required"`
	Company     string `validate:"required"`
	Location    string `validate:"required"`
	JobType     string `validate:"required,oneof=Full-time Part-time Internship Remote Contract"`
	Description string `validate:"required"`
}

func jobFormFrom(r *http.Request) jobForm {
	return jobForm{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Company:     strings.TrimSpace(r.FormValue("company")),
		Location:    strings.TrimSpace(r.FormValue("location")),
		JobType:     r.FormValue("job_type"),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
}

func jobID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "jobID"), 10, 64)
	return id, err == nil && id > 0
}

// ---------------------- DASHBOARD ----------------------

// Dashboard lists jobs for any signed-in user, filtered by optional
// case-insensitive title/location substrings.
func (h *JobHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if err := auth.Require(user, auth.CapBrowseJobs); err != nil {
		forbidden(w)
		return
	}

	filter := store.JobFilter{
		Title:    strings.TrimSpace(r.URL.Query().Get("title")),
		Location: strings.TrimSpace(r.URL.Query().Get("location")),
	}

	jobs, err := h.Store.ListJobs(r.Context(), filter)
	if err != nil {
		serverError(w, err, "list jobs")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs})
}

// ---------------------- CREATE ----------------------

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if err := auth.Require(user, auth.CapManageJobs); err != nil {
		forbidden(w)
		return
	}

	if err := utils.ParseForm(r); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid form")
		return
	}
	form := jobFormFrom(r)
	if err := validate.Struct(form); err != nil {
		utils.ValidationFailed(w, fieldErrors(err))
		return
	}

	job := models.JobPost{
		Title:       form.Title,
		Company:     form.Company,
		Location:    form.Location,
		JobType:     form.JobType,
		Description: form.Description,
		PostedBy:    user.ID,
	}
	if err := h.Store.CreateJob(r.Context(), &job); err != nil {
		serverError(w, err, "create job")
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Job posted successfully!",
		"job":     job,
	})
}

// ---------------------- MY JOBS ----------------------

func (h *JobHandler) Mine(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if err := auth.Require(user, auth.CapManageJobs); err != nil {
		forbidden(w)
		return
	}

	jobs, err := h.Store.JobsByPoster(r.Context(), user.ID)
	if err != nil {
		serverError(w, err, "list own jobs")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs})
}

// ---------------------- EDIT ----------------------

// Edit replaces every field of the post. Ownership is required, same as
// delete.
func (h *JobHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if err := auth.Require(user, auth.CapManageJobs); err != nil {
		forbidden(w)
		return
	}

	id, ok := jobID(r)
	if !ok {
		notFound(w, "job")
		return
	}
	job, err := h.Store.JobByID(r.Context(), id)
	if err != nil {
		notFound(w, "job")
		return
	}
	if err := auth.RequireJobOwner(user, job); err != nil {
		forbidden(w)
		return
	}

	if err := utils.ParseForm(r); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid form")
		return
	}
	form := jobFormFrom(r)
	if err := validate.Struct(form); err != nil {
		utils.ValidationFailed(w, fieldErrors(err))
		return
	}

	job.Title = form.Title
	job.Company = form.Company
	job.Location = form.Location
	job.JobType = form.JobType
	job.Description = form.Description

	if err := h.Store.UpdateJob(r.Context(), job); err != nil {
		serverError(w, err, "update job")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Job updated successfully!",
		"job":     job,
	})
}

// ---------------------- DELETE ----------------------

// Delete removes the post and, through the cascade, its applications.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if err := auth.Require(user, auth.CapManageJobs); err != nil {
		forbidden(w)
		return
	}

	id, ok := jobID(r)
	if !ok {
		notFound(w, "job")
		return
	}
	job, err := h.Store.JobByID(r.Context(), id)
	if err != nil {
		notFound(w, "job")
		return
	}
	if err := auth.RequireJobOwner(user, job); err != nil {
		forbidden(w)
		return
	}

	if err := h.Store.DeleteJob(r.Context(), id); err != nil {
		serverError(w, err, "delete job")
		return
	}

	utils.JSONMessage(w, http.StatusOK, "Job deleted successfully!")
}
