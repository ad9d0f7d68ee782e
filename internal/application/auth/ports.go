package auth

import (
	"context"
	"time"

	"github.com/pocketcook/auth-service/internal/domain"
)

// UserRepo is the persistence port for users. It only describes WHAT the
// auth service needs from the credential store, not HOW records are kept.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByFullName(ctx context.Context, fullName string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
}

// PasswordHasher abstracts the one-way password hash and its verify
// counterpart (bcrypt behind the adapter).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

// Claims is the fixed claim record carried by every issued token.
// Issuer and Audience are embedded only when non-empty.
type Claims struct {
	Subject  string
	Name     string
	Issuer   string
	Audience string
}

// TokenClaims is what a verifier hands back to the middleware.
type TokenClaims struct {
	Subject string
	Name    string
	Exp     time.Time
}

// TokenSigner issues and verifies bearer tokens. Verification is consumed by
// the auth middleware; issuance by the service.
type TokenSigner interface {
	Sign(claims Claims, ttl time.Duration) (string, error)
	Verify(token string) (TokenClaims, error)
}

// GoogleIdentity is the verified claim set extracted from a Google-issued
// identity token.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// IdentityVerifier validates a third-party identity assertion against the
// configured audience and issuer policy.
type IdentityVerifier interface {
	IsConfigured() bool
	Verify(ctx context.Context, idToken string) (GoogleIdentity, error)
}

// UserRegisteredEvent is published after a new identity record is created,
// whether by registration or by first Google login.
type UserRegisteredEvent struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Via      string `json:"via"` // "password" or "google"
}

// EventPublisher fans registration events out to the message broker.
// Publishing is best-effort; a broker failure never fails the request.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
}
