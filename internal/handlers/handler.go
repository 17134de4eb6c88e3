package handlers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/hirewire/hirewire/internal/mailer"
	"github.com/hirewire/hirewire/internal/storage"
	"github.com/hirewire/hirewire/internal/store"
	"github.com/hirewire/hirewire/internal/utils"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

var validate = validator.New()

// Options carries the request-independent settings handlers need.
type Options struct {
	Secret     string
	SessionTTL time.Duration
	BaseURL    string
}

type Handler struct {
	Store        store.Store
	Uploads      *storage.Store
	Auth         *AuthHandler
	Jobs         *JobHandler
	Applications *ApplicationHandler
	Admin        *AdminHandler

	opts Options
}

func New(st store.Store, uploads *storage.Store, mail mailer.Mailer, opts Options) *Handler {
	return &Handler{
		Store:        st,
		Uploads:      uploads,
		Auth:         &AuthHandler{Store: st, Uploads: uploads, opts: opts},
		Jobs:         &JobHandler{Store: st},
		Applications: &ApplicationHandler{Store: st, Uploads: uploads, Mail: mail, opts: opts},
		Admin:        &AdminHandler{Store: st},
		opts:         opts,
	}
}

// fieldErrors flattens validator output into field → message, the JSON
// stand-in for re-rendering a form with inline errors.
func fieldErrors(err error) map[string]string {
	fields := map[string]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["form"] = "invalid input"
		return fields
	}
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = "This field is required."
		case "email":
			fields[name] = "Invalid email address."
		case "min":
			fields[name] = "Must be at least " + fe.Param() + " characters."
		case "eqfield":
			fields[name] = "Passwords must match."
		case "oneof":
			fields[name] = "Invalid choice."
		default:
			fields[name] = "Invalid value."
		}
	}
	return fields
}

func forbidden(w http.ResponseWriter) {
	// no body: reveal nothing about the resource
	w.WriteHeader(http.StatusForbidden)
}

func notFound(w http.ResponseWriter, what string) {
	utils.JSONError(w, http.StatusNotFound, what+" not found")
}

func serverError(w http.ResponseWriter, err error, during string) {
	logger.Error().Err(err).Str("during", during).Msg("request failed")
	utils.JSONError(w, http.StatusInternalServerError, "internal error")
}
