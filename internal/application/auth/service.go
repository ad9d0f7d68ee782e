package auth

import (
	"context"
	"time"

	"github.com/pocketcook/auth-service/internal/domain"
)

type Service struct {
	users    UserRepo
	hasher   PasswordHasher
	signer   TokenSigner
	verifier IdentityVerifier
	pub      EventPublisher

	tokenTTL time.Duration
	issuer   string
	audience string

	audit func(action string, fields map[string]string)
}

// Config carries the token-issuance policy. It is passed in explicitly;
// the service never reads ambient configuration.
type Config struct {
	TokenTTL time.Duration
	Issuer   string
	Audience string
}

const defaultTokenTTL = 2 * time.Hour

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	signer TokenSigner,
	verifier IdentityVerifier,
	pub EventPublisher,
	cfg Config,
) *Service {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &Service{
		users:    users,
		hasher:   hasher,
		signer:   signer,
		verifier: verifier,
		pub:      pub,
		tokenTTL: ttl,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		audit:    func(string, map[string]string) {},
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// RegisterResult is returned by Register. Registration does not log the
// user in, so there is no token here.
type RegisterResult struct {
	User domain.User
}

// LoginResult is the common output of both login flows.
type LoginResult struct {
	User  domain.User
	Token string
}

// GoogleLoginResult additionally reports whether a record was created.
type GoogleLoginResult struct {
	User    domain.User
	Token   string
	Created bool
}

// issueToken signs a bearer token for a user. Both login flows use the same
// claim shape: subject is the user ID, the name claim carries the email.
func (s *Service) issueToken(u domain.User) (string, error) {
	tok, err := s.signer.Sign(Claims{
		Subject:  u.ID,
		Name:     u.Email,
		Issuer:   s.issuer,
		Audience: s.audience,
	}, s.tokenTTL)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return tok, nil
}

// GetUserByID backs the /me endpoint.
func (s *Service) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return s.users.GetByID(ctx, id)
}
