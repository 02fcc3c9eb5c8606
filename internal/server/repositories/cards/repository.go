package cards

import (
	"context"

	"github.com/cardkeep/cardkeep/internal/server/models"
)

// Repository describes storage operations for contact cards. Every operation
// is scoped to an owner: callers can never touch another user's records.
type Repository interface {
	// SelectByOwner returns all cards belonging to ownerID, oldest first.
	SelectByOwner(ctx context.Context, ownerID string) ([]*models.Card, error)

	// Insert stores a new card and returns it with the store-assigned ID.
	Insert(ctx context.Context, card *models.Card) (*models.Card, error)

	// Patch applies a partial update to the card with the given id, provided
	// it belongs to ownerID, and returns the updated row.
	Patch(ctx context.Context, ownerID, id string, patch *models.CardPatch) (*models.Card, error)

	// Remove deletes the card with the given id, provided it belongs to ownerID.
	Remove(ctx context.Context, ownerID, id string) error
}
