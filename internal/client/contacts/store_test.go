package contacts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardkeep/cardkeep/internal/client/models"
	"github.com/cardkeep/cardkeep/internal/common"
	"github.com/cardkeep/cardkeep/internal/logging"
)

type fakeRemote struct {
	cards     map[string]models.Card
	order     []string
	nextID    int
	queryErr  error
	insertErr error
	patchErr  error
	removeErr error

	// invoked while the request is in flight, before it succeeds
	patchHook  func()
	removeHook func()
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{cards: map[string]models.Card{}}
}

func (f *fakeRemote) seed(cards ...models.Card) {
	for _, c := range cards {
		f.cards[c.ID] = c
		f.order = append(f.order, c.ID)
	}
}

func (f *fakeRemote) Query(ctx context.Context, ownerID string) ([]models.Card, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []models.Card
	for _, id := range f.order {
		if c := f.cards[id]; c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRemote) Insert(ctx context.Context, draft models.CardDraft) (models.Card, error) {
	if f.insertErr != nil {
		return models.Card{}, f.insertErr
	}
	f.nextID++
	card := models.Card{
		ID: fmt.Sprintf("srv%d", f.nextID), OwnerID: "user1",
		Name: draft.Name, Company: draft.Company, Category: draft.Category,
	}
	f.cards[card.ID] = card
	f.order = append(f.order, card.ID)
	return card, nil
}

func (f *fakeRemote) Patch(ctx context.Context, id string, patch models.CardPatch) (models.Card, error) {
	if f.patchErr != nil {
		return models.Card{}, f.patchErr
	}
	if f.patchHook != nil {
		f.patchHook()
	}
	card, ok := f.cards[id]
	if !ok {
		return models.Card{}, common.ErrNotFound
	}
	if patch.Name != nil {
		card.Name = *patch.Name
	}
	if patch.Category != nil {
		card.Category = *patch.Category
	}
	f.cards[id] = card
	return card, nil
}

func (f *fakeRemote) Remove(ctx context.Context, id string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	if f.removeHook != nil {
		f.removeHook()
	}
	if _, ok := f.cards[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.cards, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func card(id, name, category string) models.Card {
	return models.Card{ID: id, OwnerID: "user1", Name: name, Category: category}
}

func newSignedInStore(t *testing.T, remote *fakeRemote) *Store {
	t.Helper()
	store := NewStore(remote, testLogger())
	store.SetOwner("user1")
	require.NoError(t, store.FetchAll(context.Background()))
	return store
}

func TestStore_FetchAll(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(card("1", "Maria Garcia", "Work"), card("2", "James Chen", "Clients"))

	store := NewStore(remote, testLogger())
	store.SetOwner("user1")

	assert.Equal(t, StateIdle, store.Request(RequestFetch).State)

	require.NoError(t, store.FetchAll(context.Background()))
	assert.Equal(t, StateFulfilled, store.Request(RequestFetch).State)

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Maria Garcia", list[0].Name)
	assert.Equal(t, "James Chen", list[1].Name)
}

func TestStore_FetchFailureKeepsMirror(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(card("1", "Maria Garcia", "Work"))
	store := newSignedInStore(t, remote)

	remote.queryErr = fmt.Errorf("%w: connection refused", common.ErrRemoteUnavailable)
	err := store.FetchAll(context.Background())
	assert.ErrorIs(t, err, common.ErrRemoteUnavailable)

	req := store.Request(RequestFetch)
	assert.Equal(t, StateRejected, req.State)
	assert.ErrorIs(t, req.Err, common.ErrRemoteUnavailable)

	assert.Len(t, store.List(), 1, "mirror survives a failed refresh")
}

func TestStore_FetchWithoutOwner(t *testing.T) {
	store := NewStore(newFakeRemote(), testLogger())
	err := store.FetchAll(context.Background())
	assert.ErrorIs(t, err, common.ErrPermissionDenied)
}

func TestStore_AddAppendsStoredCard(t *testing.T) {
	remote := newFakeRemote()
	store := newSignedInStore(t, remote)

	created, err := store.Add(context.Background(), models.CardDraft{Name: "Sarah Johnson", Category: "Work"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, StateFulfilled, store.Request(RequestAdd).State)

	list := store.List()
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestStore_AddFailureLeavesMirror(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(card("1", "Maria Garcia", "Work"))
	store := newSignedInStore(t, remote)

	remote.insertErr = fmt.Errorf("%w: name: cannot be blank", common.ErrValidation)
	_, err := store.Add(context.Background(), models.CardDraft{})
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, StateRejected, store.Request(RequestAdd).State)
	assert.Len(t, store.List(), 1)
}

func TestStore_UpdateReplacesInPlace(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(card("1", "Maria Garcia", "Work"), card("2", "James Chen", "Clients"))
	store := newSignedInStore(t, remote)

	name := "Maria Garcia-Lopez"
	updated, err := store.Update(context.Background(), "1", models.CardPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, StateFulfilled, store.Request("1").State)

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, name, list[0].Name, "updated record keeps its position")
	assert.Equal(t, "James Chen", list[1].Name)
}

func TestStore_UpdateUnknownID(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(card("1", "Maria Garcia", "Work"))
	store := newSignedInStore(t, remote)

	name := "Nobody"
	_, err := store.Update(context.Background(), "missing", models.CardPatch{Name: &name})
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, StateRejected, store.Request("missing").State)
	assert.Len(t, store.List(), 1, "cardinality unchanged")
}

func TestStore_DeleteKeepsOthers(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(card("1", "Maria Garcia", "Work"), card("2", "James Chen", "Clients"), card("3", "Sarah Johnson", "Work"))
	store := newSignedInStore(t, remote)

	require.NoError(t, store.Delete(context.Background(), "2"))
	assert.Equal(t, StateFulfilled, store.Request("2").State)

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "3", list[1].ID)
}

func TestStore_DeleteFailureKeepsRecord(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(card("1", "Maria Garcia", "Work"))
	store := newSignedInStore(t, remote)

	remote.removeErr = fmt.Errorf("%w: connection refused", common.ErrRemoteUnavailable)
	err := store.Delete(context.Background(), "1")
	assert.ErrorIs(t, err, common.ErrRemoteUnavailable)
	assert.Equal(t, StateRejected, store.Request("1").State)
	assert.Len(t, store.List(), 1)
}

func TestStore_RequestsTrackedPerRecord(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(card("1", "Maria Garcia", "Work"), card("2", "James Chen", "Clients"))
	store := newSignedInStore(t, remote)

	remote.patchErr = errors.New("boom")
	name := "x"
	_, err := store.Update(context.Background(), "1", models.CardPatch{Name: &name})
	require.Error(t, err)

	assert.Equal(t, StateRejected, store.Request("1").State)
	assert.Equal(t, StateIdle, store.Request("2").State, "other records unaffected")
}

func TestStore_SignOutDuringUpdateLeavesNoTrace(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(card("1", "Maria Garcia", "Work"))
	store := newSignedInStore(t, remote)

	remote.patchHook = func() { store.SetOwner("") }

	name := "Maria Garcia-Lopez"
	_, err := store.Update(context.Background(), "1", models.CardPatch{Name: &name})
	require.NoError(t, err)

	assert.Empty(t, store.List(), "sign-out mid-flight keeps the mirror cleared")
	assert.Equal(t, StateIdle, store.Request("1").State, "old owner's request entry must not survive the reset")
}

func TestStore_SignOutDuringDeleteLeavesNoTrace(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(card("1", "Maria Garcia", "Work"))
	store := newSignedInStore(t, remote)

	remote.removeHook = func() { store.SetOwner("") }

	require.NoError(t, store.Delete(context.Background(), "1"))

	assert.Empty(t, store.List())
	assert.Equal(t, StateIdle, store.Request("1").State, "old owner's request entry must not survive the reset")
}

func TestStore_SetOwnerClearsMirror(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(card("1", "Maria Garcia", "Work"))
	store := newSignedInStore(t, remote)
	require.Len(t, store.List(), 1)

	store.SetOwner("")
	assert.Empty(t, store.List())
	assert.Equal(t, StateIdle, store.Request(RequestFetch).State)
}

func TestStore_CategoriesAndByCategory(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(
		card("1", "Maria Garcia", "Work"),
		card("2", "James Chen", "Clients"),
		card("3", "Sarah Johnson", "Work"),
	)
	store := newSignedInStore(t, remote)

	assert.Equal(t, []string{"Clients", "Work"}, store.Categories())

	work := store.ByCategory("Work")
	require.Len(t, work, 2)
	assert.Equal(t, "1", work[0].ID)
	assert.Equal(t, "3", work[1].ID)
	assert.Empty(t, store.ByCategory("Personal"))
}

func TestStore_Get(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(card("1", "Maria Garcia", "Work"))
	store := newSignedInStore(t, remote)

	got, err := store.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Maria Garcia", got.Name)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
