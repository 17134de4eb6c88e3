package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hirewire/hirewire/internal/auth"
	"github.com/hirewire/hirewire/internal/middleware"
	"github.com/hirewire/hirewire/internal/models"
	"github.com/hirewire/hirewire/internal/storage"
	"github.com/hirewire/hirewire/internal/store"
	"github.com/hirewire/hirewire/internal/utils"
)

type AuthHandler struct {
	Store   store.Store
	Uploads *storage.Store

	opts Options
}

// ----------- Forms -------------

type registerForm struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	Role            string `validate:"required,oneof=seeker employer"`
}

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// -------------- REGISTER ----------------------

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := utils.ParseForm(r); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid form")
		return
	}

	form := registerForm{
		Name:            strings.TrimSpace(r.FormValue("name")),
		Email:           strings.TrimSpace(r.FormValue("email")),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
		Role:            r.FormValue("role"),
	}
	if err := validate.Struct(form); err != nil {
		utils.ValidationFailed(w, fieldErrors(err))
		return
	}

	// optional profile resume; urlencoded bodies have no file at all
	file, header, err := r.FormFile("resume")
	hasResume := err == nil
	if err != nil && !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		utils.JSONError(w, http.StatusBadRequest, "invalid resume upload")
		return
	}
	if hasResume {
		defer file.Close()
		if !storage.ExtAllowed(header.Filename, storage.ResumeExts) {
			utils.ValidationFailed(w, map[string]string{
				"resume": "Only .pdf, .doc, .docx files allowed!",
			})
			return
		}
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		serverError(w, err, "hash password")
		return
	}

	user := models.User{
		Name:     form.Name,
		Email:    form.Email,
		Password: hash,
		Role:     models.Role(form.Role),
	}

	var stored string
	if hasResume {
		stored, err = h.Uploads.Save(file, header.Filename)
		if err != nil {
			serverError(w, err, "save resume")
			return
		}
		user.Resume = &stored
	}

	if err := h.Store.CreateUser(r.Context(), &user); err != nil {
		// don't leave the uploaded file orphaned
		if stored != "" {
			_ = h.Uploads.Remove(stored)
		}
		if errors.Is(err, store.ErrDuplicateEmail) {
			utils.JSONMessage(w, http.StatusConflict, "Email already registered. Please login.")
			return
		}
		serverError(w, err, "create user")
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Registration successful. Please login.",
		"id":      user.ID,
	})
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form loginForm

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := utils.DecodeJSON(w, r, &form); err != nil {
			return
		}
	} else {
		if err := utils.ParseForm(r); err != nil {
			utils.JSONError(w, http.StatusBadRequest, "invalid form")
			return
		}
		form.Email = strings.TrimSpace(r.FormValue("email"))
		form.Password = r.FormValue("password")
	}

	if err := validate.Struct(form); err != nil {
		utils.ValidationFailed(w, fieldErrors(err))
		return
	}

	user, err := h.Store.UserByEmail(r.Context(), form.Email)
	if errors.Is(err, store.ErrNotFound) {
		// same response as a wrong password: no user enumeration
		utils.JSONError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		serverError(w, err, "load user")
		return
	}

	if !auth.CheckPassword(user.Password, form.Password) {
		utils.JSONError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, expiresAt, err := auth.GenerateToken(user.ID, user.Email, h.opts.Secret, h.opts.SessionTTL)
	if err != nil {
		serverError(w, err, "generate token")
		return
	}

	session := models.Session{Token: token, UserID: user.ID, ExpiresAt: expiresAt}
	if err := h.Store.CreateSession(r.Context(), &session); err != nil {
		serverError(w, err, "create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful!",
		"token":   token,
	})
}

// -------------- LOGOUT -----------------------

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFrom(r)
	if err := h.Store.DeleteSession(r.Context(), token); err != nil {
		serverError(w, err, "delete session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	utils.JSONMessage(w, http.StatusOK, "You have been logged out.")
}
