package passwordresets

import (
	"context"
	"time"

	"github.com/cardkeep/cardkeep/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, token string, validity time.Duration) error
	// Consume returns the reset matching token and deletes it, so a token can
	// only ever be used once.
	Consume(ctx context.Context, token string) (*models.PasswordReset, error)
}
