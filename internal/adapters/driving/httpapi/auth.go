package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/talentia-labs/talentia/internal/auth"
	"github.com/talentia-labs/talentia/internal/core/domain"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type sessionResponse struct {
	UserID      string    `json:"user_id"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	session, err := s.opts.Auth.Register(r.Context(), creds)
	if err != nil {
		writeError(w, err)
		return
	}

	// A new account means fresh interest in the catalog. Kick off a scrape
	// in the background, original behaviour.
	s.enqueueIngest("register")

	writeJSON(w, http.StatusCreated, sessionJSON(session))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	session, err := s.opts.Auth.Login(r.Context(), creds)
	if err != nil {
		writeError(w, err)
		return
	}

	s.enqueueIngest("login")

	writeJSON(w, http.StatusOK, sessionJSON(session))
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.userFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	})
}

// requireUser rejects requests without a valid bearer token.
func (s *Server) requireUser(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.userFrom(r); err != nil {
			writeError(w, err)
			return
		}
		next(w, r)
	})
}

// requireAdmin rejects requests without the configured admin key. When no
// key is configured the admin surface is closed entirely.
func (s *Server) requireAdmin(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.AdminKey == "" || r.Header.Get("X-Admin-Key") != s.opts.AdminKey {
			writeError(w, domain.ErrAuthInvalid)
			return
		}
		next(w, r)
	})
}

func (s *Server) userFrom(r *http.Request) (*domain.User, error) {
	token, err := auth.BearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return nil, err
	}
	return s.opts.Auth.Verify(r.Context(), token)
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (auth.Credentials, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return auth.Credentials{}, false
	}
	return auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	}, true
}

func sessionJSON(session *auth.Session) sessionResponse {
	return sessionResponse{
		UserID:      session.UserID,
		AccessToken: session.AccessToken,
		TokenType:   "bearer",
		ExpiresAt:   session.ExpiresAt,
	}
}
