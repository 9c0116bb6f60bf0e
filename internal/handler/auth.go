package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/beanmap/beanmap/internal/model"
	"github.com/beanmap/beanmap/internal/service"
	"github.com/beanmap/beanmap/internal/view"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// JoinPage renders the login form. A notice query param carries messages
// from cross-page redirects (e.g. register found an existing account).
func (h *AuthHandler) JoinPage(w http.ResponseWriter, r *http.Request) {
	data := &view.Data{Title: "Log in"}
	if r.URL.Query().Get("notice") == "exists" {
		data.Notice = "This email already exists, log in instead."
	}
	view.Render(w, r, "join.page.html", http.StatusOK, data)
}

func (h *AuthHandler) Join(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	form := map[string]string{"email": email}

	if email == "" || password == "" {
		view.Render(w, r, "join.page.html", http.StatusUnprocessableEntity, &view.Data{
			Title: "Log in",
			Error: "Email and password are required.",
			Form:  form,
		})
		return
	}

	user, err := h.authService.Login(email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Unknown emails are sent to registration, as the site has
			// always done; known emails get a generic failure.
			registered, lookupErr := h.authService.EmailRegistered(email)
			if lookupErr == nil && !registered {
				http.Redirect(w, r, "/register?notice=unknown", http.StatusSeeOther)
				return
			}

			view.Render(w, r, "join.page.html", http.StatusUnprocessableEntity, &view.Data{
				Title: "Log in",
				Error: "Credentials incorrect, please try again.",
				Form:  form,
			})
			return
		}

		slog.Error("login failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.establishSession(w, r, user)
}

// RegisterPage renders the registration form
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	data := &view.Data{Title: "Register"}
	if r.URL.Query().Get("notice") == "unknown" {
		data.Notice = "That email does not exist, please register."
	}
	view.Render(w, r, "register.page.html", http.StatusOK, data)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")

	form := map[string]string{"name": name, "email": email}

	user, err := h.authService.Register(name, email, password)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			http.Redirect(w, r, "/join?notice=exists", http.StatusSeeOther)
			return
		}

		// Validation errors re-render the form
		view.Render(w, r, "register.page.html", http.StatusUnprocessableEntity, &view.Data{
			Title: "Register",
			Error: err.Error(),
			Form:  form,
		})
		return
	}

	// Log in and authenticate right after registration
	h.establishSession(w, r, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) establishSession(w http.ResponseWriter, r *http.Request, user *model.User) {
	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate session token", "error", err, "user_id", user.ID)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.authService.SetSessionCookie(w, token, time.Now().Add(h.authService.SessionExpiry()))

	slog.Info("session established", "user_id", user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
