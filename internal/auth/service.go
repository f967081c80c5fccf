// Package auth issues and verifies user credentials: bcrypt password
// hashes and HS256 bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentia-labs/talentia/internal/core/domain"
	"github.com/talentia-labs/talentia/internal/core/ports/driven"
)

// DefaultTokenTTL is the access token lifetime when the config leaves it
// unset.
const DefaultTokenTTL = 60 * time.Minute

// Credentials carries a registration or login request.
type Credentials struct {
	Email    string
	Password string
	FullName string
}

// Session is issued on successful registration or login.
type Session struct {
	UserID      string
	AccessToken string
	ExpiresAt   time.Time
}

// Service manages user accounts and bearer tokens.
type Service struct {
	users  driven.UserStore
	secret []byte
	ttl    time.Duration
}

// New creates an auth service signing tokens with secret. A zero ttl falls
// back to DefaultTokenTTL.
func New(users driven.UserStore, secret string, ttl time.Duration) *Service {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Register creates an account and returns a fresh session. Duplicate emails
// yield domain.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, creds Credentials) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     creds.FullName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user.ID)
}

// Login verifies the password and returns a fresh session. Unknown emails
// and wrong passwords are indistinguishable: both yield
// domain.ErrAuthInvalid.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAuthInvalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, domain.ErrAuthInvalid
	}
	return s.issue(user.ID)
}

// Verify validates a bearer token and returns the authenticated user.
func (s *Service) Verify(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.subject(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAuthInvalid
		}
		return nil, err
	}
	return user, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", domain.ErrAuthInvalid
	}
	return parts[1], nil
}

func (s *Service) issue(userID string) (*Session, error) {
	expiresAt := time.Now().Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Session{
		UserID:      userID,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *Service) subject(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrAuthExpired
		}
		return "", domain.ErrAuthInvalid
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrAuthInvalid
	}
	return claims.Subject, nil
}
