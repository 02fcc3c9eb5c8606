package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cardkeep/cardkeep/internal/server/models"
	"github.com/cardkeep/cardkeep/internal/server/repositories/repomanager"
)

// CardService exposes the remote document store contract for contact cards:
// query by owner, insert, partial patch, remove. Ownership scoping happens in
// the repository, so a caller can never reach another user's cards.
type CardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCardService(db *sql.DB, rm repomanager.RepositoryManager) *CardService {
	return &CardService{db: db, repomanager: rm}
}

// ListByOwner returns every card belonging to ownerID, oldest first.
func (s *CardService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Card, error) {
	result, err := s.repomanager.Cards(s.db).SelectByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error selecting cards: %w", err)
	}
	return result, nil
}

// Create stores a new card for ownerID and returns it with the assigned id.
func (s *CardService) Create(ctx context.Context, ownerID string, card *models.Card) (*models.Card, error) {
	card.OwnerID = ownerID
	created, err := s.repomanager.Cards(s.db).Insert(ctx, card)
	if err != nil {
		return nil, fmt.Errorf("error creating card: %w", err)
	}
	return created, nil
}

// Patch merges the non-nil fields of patch into the card and returns the
// updated record. Missing or foreign ids surface common.ErrNotFound.
func (s *CardService) Patch(ctx context.Context, ownerID, id string, patch *models.CardPatch) (*models.Card, error) {
	updated, err := s.repomanager.Cards(s.db).Patch(ctx, ownerID, id, patch)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the card. Missing or foreign ids surface common.ErrNotFound.
func (s *CardService) Delete(ctx context.Context, ownerID, id string) error {
	return s.repomanager.Cards(s.db).Remove(ctx, ownerID, id)
}
