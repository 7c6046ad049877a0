package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/twofourteen/hr-portal/internal/transport"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*User, string, error)
	Signup(dto SignupDTO) (*User, string, error)
	ValidateSession(tokenString string) (*User, error)
	SessionDuration() time.Duration
}

type Handler struct {
	*transport.BaseHandler
	Service      ServiceAPI
	secureCookie bool
}

func NewHandler(service ServiceAPI, secureCookie bool) *Handler {
	return &Handler{
		BaseHandler:  transport.NewBaseHandler(nil),
		Service:      service,
		secureCookie: secureCookie,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.Service.Authenticate(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.WriteJSON(w, http.StatusOK, LoginResponse{Message: "login successful", User: user})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var dto SignupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.Service.Signup(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.WriteJSON(w, http.StatusCreated, LoginResponse{Message: "account created", User: user})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// AuthMiddleware resolves the session cookie into an identity and injects
// it into the request context. Requests without a valid session get 401.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			h.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		user, err := h.Service.ValidateSession(cookie.Value)
		if err != nil {
			h.Logger.Warn("session validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

// RequireHR gates a route to hr and admin identities. It assumes
// AuthMiddleware already ran.
func (h *Handler) RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || user == nil {
			h.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if !user.IsHR() {
			h.Logger.Warn("access denied: hr role required", "user_id", user.ID, "role", user.Role)
			h.WriteError(w, http.StatusForbidden, "hr access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.Service.SessionDuration() / time.Second),
	})
}
