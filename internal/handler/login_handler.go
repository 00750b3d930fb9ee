package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Raymond9734/customer-admin-portal/internal/backend"
	"github.com/Raymond9734/customer-admin-portal/internal/models"
	"github.com/Raymond9734/customer-admin-portal/internal/session"
)

// LoginHandler handles the login screen and logout.
type LoginHandler struct {
	backend  backend.Client
	sessions session.Store
	renderer *Renderer
	logger   *slog.Logger
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(backendClient backend.Client, sessions session.Store, renderer *Renderer, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{
		backend:  backendClient,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

// loginData is the login template payload
type loginData struct {
	Username string
	Error    string
}

// Show handles GET /login
func (h *LoginHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "login", loginData{})
}

// Submit handles POST /login: exchanges credentials for a token, stores
// it in the session and redirects to the management screen.
func (h *LoginHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, http.StatusBadRequest, "login", loginData{Error: "Login failed"})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.backend.Login(r.Context(), username, password)
	if err != nil {
		h.logger.Warn("login failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		h.renderer.Render(w, statusForError(err), "login", loginData{
			Username: username,
			Error:    models.UserMessage(err, "Login failed"),
		})
		return
	}

	sessionID := h.ensureSessionID(w, r)
	if err := h.sessions.SetToken(r.Context(), sessionID, token); err != nil {
		h.logger.Error("failed to store session token", slog.String("error", err.Error()))
		h.renderer.Render(w, http.StatusInternalServerError, "login", loginData{
			Username: username,
			Error:    "Login failed",
		})
		return
	}

	h.logger.Info("admin logged in", slog.String("username", username))
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

// Logout handles POST /logout: clears the stored token and the session
// cookie, then redirects to login. No backend call is made.
func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := h.sessions.Clear(r.Context(), cookie.Value); err != nil {
			h.logger.Error("failed to clear session", slog.String("error", err.Error()))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// RedirectToLogin is the catch-all for unmatched routes.
func RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ensureSessionID returns the request's session ID, minting one and
// setting the cookie when absent.
func (h *LoginHandler) ensureSessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := session.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// statusForError maps application errors to the HTTP status used when
// re-rendering a screen with an inline error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrBackendUnavailable):
		return http.StatusBadGateway
	default:
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "INVALID_INPUT" {
			return http.StatusBadRequest
		}
		return http.StatusOK
	}
}
