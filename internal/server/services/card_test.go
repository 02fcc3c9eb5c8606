package services

import (
	"context"
	"errors"
	"testing"

	"github.com/cardkeep/cardkeep/internal/common"
	"github.com/cardkeep/cardkeep/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardService_ListByOwner(t *testing.T) {
	rm := &fakeRepoManager{cards: &fakeCardsRepo{
		selectOut: []*models.Card{{ID: "1"}, {ID: "2"}},
	}}
	svc := NewCardService(nil, rm)

	result, err := svc.ListByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestCardService_ListByOwner_Error(t *testing.T) {
	rm := &fakeRepoManager{cards: &fakeCardsRepo{selectErr: errors.New("db down")}}
	svc := NewCardService(nil, rm)

	_, err := svc.ListByOwner(context.Background(), "owner-1")
	assert.Error(t, err)
}

func TestCardService_Create_SetsOwner(t *testing.T) {
	rm := &fakeRepoManager{cards: &fakeCardsRepo{}}
	svc := NewCardService(nil, rm)

	card, err := svc.Create(context.Background(), "owner-1", &models.Card{Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "card-1", card.ID)
	assert.Equal(t, "owner-1", card.OwnerID)
}

func TestCardService_Patch_NotFound(t *testing.T) {
	rm := &fakeRepoManager{cards: &fakeCardsRepo{patchErr: common.ErrNotFound}}
	svc := NewCardService(nil, rm)

	name := "x"
	_, err := svc.Patch(context.Background(), "owner-1", "missing", &models.CardPatch{Name: &name})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCardService_Delete(t *testing.T) {
	rm := &fakeRepoManager{cards: &fakeCardsRepo{}}
	svc := NewCardService(nil, rm)
	assert.NoError(t, svc.Delete(context.Background(), "owner-1", "1"))
}
