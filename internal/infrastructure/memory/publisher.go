package memory

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/pocketcook/auth-service/internal/application/auth"
)

// NoopPublisher stands in for the broker when RABBIT_URL is not configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishUserRegistered(ctx context.Context, evt auth.UserRegisteredEvent) error {
	log.Debug().
		Str("user_id", evt.UserID).
		Str("email", evt.Email).
		Str("via", evt.Via).
		Msg("noop publisher: user registered")
	return nil
}
