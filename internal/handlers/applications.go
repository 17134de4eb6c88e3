package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hirewire/hirewire/internal/auth"
	"github.com/hirewire/hirewire/internal/mailer"
	"github.com/hirewire/hirewire/internal/middleware"
	"github.com/hirewire/hirewire/internal/models"
	"github.com/hirewire/hirewire/internal/storage"
	"github.com/hirewire/hirewire/internal/store"
	"github.com/hirewire/hirewire/internal/utils"
)

type ApplicationHandler struct {
	Store   store.Store
	Uploads *storage.Store
	Mail    mailer.Mailer

	opts Options
}

const alreadyApplied = "You have already applied for this job."

// ---------------------- APPLY ----------------------

// Apply runs the submission as a small saga: save the resume, insert the
// application (compensating by removing the file if the insert fails), then
// notify the employer best-effort. A notification fault never rolls back a
// stored application.
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if err := auth.Require(user, auth.CapApply); err != nil {
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

	// friendly short-circuit; the unique constraint below is the real guard
	exists, err := h.Store.HasApplication(r.Context(), user.ID, job.ID)
	if err != nil {
		serverError(w, err, "check application")
		return
	}
	if exists {
		utils.JSONMessage(w, http.StatusOK, alreadyApplied)
		return
	}

	if err := utils.ParseForm(r); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid form")
		return
	}

	message := strings.TrimSpace(r.FormValue("message"))
	if message == "" {
		utils.ValidationFailed(w, map[string]string{"message": "This field is required."})
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		utils.ValidationFailed(w, map[string]string{"resume": "This field is required."})
		return
	}
	defer file.Close()

	if !storage.ExtAllowed(header.Filename, storage.ApplicationExts) {
		utils.ValidationFailed(w, map[string]string{
			"resume": "Only PDF/DOC/DOCX/png files allowed!",
		})
		return
	}

	stored, err := h.Uploads.Save(file, header.Filename)
	if err != nil {
		serverError(w, err, "save resume")
		return
	}

	app := models.Application{
		ResumeFilename: stored,
		Message:        &message,
		UserID:         user.ID,
		JobID:          job.ID,
	}
	if err := h.Store.CreateApplication(r.Context(), &app); err != nil {
		_ = h.Uploads.Remove(stored)
		if errors.Is(err, store.ErrDuplicateApplication) {
			// lost a race with an identical submission
			utils.JSONMessage(w, http.StatusOK, alreadyApplied)
			return
		}
		serverError(w, err, "create application")
		return
	}

	h.notifyEmployer(r, user, job, message, stored)

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Your application has been sent to the employer!",
		"application": app,
	})
}

func (h *ApplicationHandler) notifyEmployer(r *http.Request, applicant *models.User, job *models.JobPost, message, stored string) {
	employer, err := h.Store.UserByID(r.Context(), job.PostedBy)
	if err != nil {
		logger.Error().Err(err).Int64("job_id", job.ID).Msg("employer lookup failed, notice not sent")
		return
	}

	body := mailer.ApplicationBody(
		employer.Name,
		applicant.Name,
		applicant.Email,
		job.Title,
		message,
		storage.URL(h.opts.BaseURL, stored),
	)
	if err := h.Mail.Send(employer.Email, mailer.ApplicationSubject(job.Title), body); err != nil {
		logger.Error().Err(err).Int64("job_id", job.ID).Msg("application notice not sent")
	}
}

// ---------------------- APPLICANTS ----------------------

func (h *ApplicationHandler) Applicants(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if err := auth.Require(user, auth.CapViewApplicants); err != nil {
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

	apps, err := h.Store.ApplicationsByJob(r.Context(), job.ID)
	if err != nil {
		serverError(w, err, "list applicants")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"job":        job,
		"applicants": apps,
	})
}
