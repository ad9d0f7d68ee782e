package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pocketcook/auth-service/internal/domain"
)

// Register creates a new identity record with a bcrypt password hash.
// Uniqueness is keyed on the normalized email: it is the login key, so it is
// the identity that must not collide. The plaintext password is used once to
// derive the hash and never stored.
func (s *Service) Register(ctx context.Context, fullName, email, password string) (RegisterResult, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))

	if fullName == "" {
		return RegisterResult{}, domain.ErrMissingField("fullName")
	}
	if email == "" {
		return RegisterResult{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return RegisterResult{}, domain.ErrMissingField("password")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return RegisterResult{}, domain.ErrEmailAlreadyRegistered()
	} else if !domain.Is(err, "user_not_found") {
		return RegisterResult{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return RegisterResult{}, domain.ErrHashFailed(err)
	}

	created, err := s.users.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return RegisterResult{}, err
	}

	s.publishRegistered(ctx, created, "password")
	s.audit("user_registered", map[string]string{
		"user_id": created.ID,
		"email":   created.Email,
	})

	return RegisterResult{User: created}, nil
}

// publishRegistered is best-effort: a broker outage must not fail the
// request, the record is already persisted.
func (s *Service) publishRegistered(ctx context.Context, u domain.User, via string) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID:   u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Via:      via,
	}); err != nil {
		s.audit("publish_failed", map[string]string{
			"user_id": u.ID,
			"error":   err.Error(),
		})
	}
}
