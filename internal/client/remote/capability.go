// Package remote defines the capability interfaces the client core consumes
// and their HTTP implementation against the CardKeep server.
package remote

import (
	"context"

	"github.com/cardkeep/cardkeep/internal/client/models"
)

// Auth is the authentication capability: credential exchange plus a
// subscription that reports every identity change (nil means signed out).
type Auth interface {
	Register(ctx context.Context, name, email, password string) (*models.Identity, error)
	Login(ctx context.Context, email, password string) (*models.Identity, error)
	Logout(ctx context.Context) error
	RequestPasswordReset(ctx context.Context, email string) error

	// Subscribe registers fn to be called on every identity change. The
	// returned function cancels the subscription.
	Subscribe(fn func(*models.Identity)) func()

	// Current returns the signed-in identity, or nil.
	Current() *models.Identity
}

// CardStore is the remote document store capability for contact cards, keyed
// by owner identity. Failures carry a human-readable message and map onto the
// common error taxonomy (ErrRemoteUnavailable, ErrPermissionDenied,
// ErrNotFound, ErrValidation).
type CardStore interface {
	Query(ctx context.Context, ownerID string) ([]models.Card, error)
	Insert(ctx context.Context, draft models.CardDraft) (models.Card, error)
	Patch(ctx context.Context, id string, patch models.CardPatch) (models.Card, error)
	Remove(ctx context.Context, id string) error
}

// Exporter requests a server-side export of the signed-in user's cards and
// returns a presigned download URL.
type Exporter interface {
	Export(ctx context.Context, format string) (string, error)
}
