package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/pocketcook/auth-service/internal/domain"
)

var errMissingEmailClaim = errors.New("verified token carries no email claim")

// GoogleLogin verifies a Google-issued identity token and logs the holder
// in, creating an identity record on first contact. Any verification failure
// (malformed, expired, wrong audience, bad signature) surfaces as the same
// google_token_invalid error with the verifier's reason attached.
func (s *Service) GoogleLogin(ctx context.Context, idToken string) (GoogleLoginResult, error) {
	if s.verifier == nil || !s.verifier.IsConfigured() {
		return GoogleLoginResult{}, domain.ErrGoogleLoginNotConfigured()
	}

	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return GoogleLoginResult{}, domain.ErrMissingField("token")
	}

	ident, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return GoogleLoginResult{}, domain.ErrGoogleTokenInvalid(err)
	}

	email := strings.ToLower(strings.TrimSpace(ident.Email))
	if email == "" {
		return GoogleLoginResult{}, domain.ErrGoogleTokenInvalid(errMissingEmailClaim)
	}

	u, err := s.users.GetByEmail(ctx, email)
	created := false
	switch {
	case err == nil:
		// Existing record is reused unmodified; the name claim does not
		// overwrite the stored display name.
	case domain.Is(err, "user_not_found"):
		u, err = s.users.Create(ctx, domain.User{
			ID:           uuid.NewString(),
			FullName:     ident.Name,
			Email:        email,
			PasswordHash: domain.GoogleAuthSentinel,
		})
		if err != nil {
			return GoogleLoginResult{}, err
		}
		created = true
		s.publishRegistered(ctx, u, "google")
	default:
		return GoogleLoginResult{}, err
	}

	tok, err := s.issueToken(u)
	if err != nil {
		return GoogleLoginResult{}, err
	}

	if created {
		s.audit("google_user_registered", map[string]string{
			"user_id": u.ID,
			"email":   u.Email,
		})
	} else {
		s.audit("google_user_logged_in", map[string]string{"user_id": u.ID})
	}

	return GoogleLoginResult{User: u, Token: tok, Created: created}, nil
}
