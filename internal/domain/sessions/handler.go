package sessions

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"petcheck/internal/middleware"
	"petcheck/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// CookieOptions de la cookie de sesión.
type CookieOptions struct {
	Secure bool
	// MaxAge si el token no trae expiración.
	MaxAge time.Duration
}

func RegisterRoutes(r chi.Router, svc *Service, opts CookieOptions) {
	if opts.MaxAge <= 0 {
		opts.MaxAge = 7 * 24 * time.Hour
	}
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", loginHandler(svc, opts))
		ar.Post("/logout", logoutHandler(svc, opts))
		ar.Get("/me", meHandler())
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"nome"`
}

type loginData struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type loginResponse struct {
	Success bool       `json:"success"`
	Data    *loginData `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
}

type meResponse struct {
	TutorID   string     `json:"tutor_id"`
	Email     string     `json:"email"`
	Name      string     `json:"nome"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// loginHandler godoc
// @Summary Login
// @Description Delega en el proveedor de autenticación y deja el token en una cookie HttpOnly.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "email y senha"
// @Success 200 {object} loginResponse
// @Failure 401 {object} loginResponse
// @Failure 503 {object} loginResponse
// @Router /auth/login [post]
func loginHandler(svc *Service, opts CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, loginResponse{Message: "invalid json"})
			return
		}

		sess, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidCredentials):
				writeJSON(w, http.StatusUnauthorized, loginResponse{Message: "invalid credentials"})
			case errors.Is(err, ErrLoginUnavailable), errors.Is(err, auth.ErrNotConfigured):
				writeJSON(w, http.StatusServiceUnavailable, loginResponse{Message: "login not available"})
			default:
				writeJSON(w, http.StatusBadGateway, loginResponse{Message: "auth provider error"})
			}
			return
		}

		cookie := &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    sess.Token,
			Path:     "/",
			HttpOnly: true,
			Secure:   opts.Secure,
			SameSite: http.SameSiteLaxMode,
		}
		if !sess.ExpiresAt.IsZero() {
			cookie.Expires = sess.ExpiresAt
		} else {
			cookie.MaxAge = int(opts.MaxAge.Seconds())
		}
		http.SetCookie(w, cookie)

		writeJSON(w, http.StatusOK, loginResponse{
			Success: true,
			Data: &loginData{
				Token: sess.Token,
				User:  userResponse{ID: sess.TutorID, Email: sess.Email, Name: sess.Name},
			},
		})
	}
}

// logoutHandler godoc
// @Summary Logout
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func logoutHandler(svc *Service, opts CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := middleware.GetSession(r.Context()); ok {
			if err := svc.Logout(r.Context(), sess); err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   opts.Secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

// meHandler godoc
// @Summary Sesión actual
// @Tags auth
// @Produce json
// @Success 200 {object} meResponse
// @Failure 401 {string} string "unauthorized"
// @Router /auth/me [get]
func meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		resp := meResponse{TutorID: sess.TutorID, Email: sess.Email, Name: sess.Name}
		if !sess.ExpiresAt.IsZero() {
			exp := sess.ExpiresAt
			resp.ExpiresAt = &exp
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
