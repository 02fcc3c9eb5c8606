// Package contacts keeps an in-memory mirror of the signed-in user's contact
// cards and pushes every mutation through the remote card store.
package contacts

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cardkeep/cardkeep/internal/client/models"
	"github.com/cardkeep/cardkeep/internal/client/remote"
	"github.com/cardkeep/cardkeep/internal/common"
	"github.com/cardkeep/cardkeep/internal/logging"
)

// State is the lifecycle of one tracked request.
type State string

const (
	StateIdle      State = "idle"
	StatePending   State = "pending"
	StateFulfilled State = "fulfilled"
	StateRejected  State = "rejected"
)

// Request is the tracked outcome of one operation. Err is set only in the
// rejected state.
type Request struct {
	State State
	Err   error
}

// Request keys for operations that are not tied to a single record. Mutations
// of an existing record are tracked under the record's id instead, so two
// concurrent updates of different cards never mask each other.
const (
	RequestFetch = "fetch"
	RequestAdd   = "add"
)

// Store mirrors the owner's cards. All methods are safe for concurrent use;
// writes against the same record id are serialized so a delete can never
// overtake the update it follows.
type Store struct {
	remote remote.CardStore
	logger logging.Logger

	mu       sync.RWMutex
	ownerID  string
	cards    []models.Card
	requests map[string]Request

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewStore(remote remote.CardStore, logger logging.Logger) *Store {
	return &Store{
		remote:   remote,
		logger:   logger,
		requests: map[string]Request{},
		locks:    map[string]*sync.Mutex{},
	}
}

// SetOwner switches the store to a new owner (empty means signed out). The
// mirror and all request tracking reset; the caller decides when to FetchAll.
func (s *Store) SetOwner(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownerID = ownerID
	s.cards = nil
	s.requests = map[string]Request{}
}

// Owner returns the current owner id, empty when signed out.
func (s *Store) Owner() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ownerID
}

// Request reports the tracked state for a key: RequestFetch, RequestAdd, or a
// record id. Unknown keys are idle.
func (s *Store) Request(key string) Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.requests[key]; ok {
		return r
	}
	return Request{State: StateIdle}
}

func (s *Store) setRequest(key string, r Request) {
	s.mu.Lock()
	s.requests[key] = r
	s.mu.Unlock()
}

// FetchAll replaces the mirror with the remote result. On failure the mirror
// stays as it was, so a transient outage never blanks an already loaded list.
func (s *Store) FetchAll(ctx context.Context) error {
	s.mu.RLock()
	ownerID := s.ownerID
	s.mu.RUnlock()

	if ownerID == "" {
		return fmt.Errorf("%w: not signed in", common.ErrPermissionDenied)
	}

	s.setRequest(RequestFetch, Request{State: StatePending})

	cards, err := s.remote.Query(ctx, ownerID)
	if err != nil {
		s.logger.Error(ctx, "error fetching cards", "error", err)
		s.setRequest(RequestFetch, Request{State: StateRejected, Err: err})
		return err
	}

	s.mu.Lock()
	if s.ownerID == ownerID {
		s.cards = cards
		s.requests[RequestFetch] = Request{State: StateFulfilled}
	}
	s.mu.Unlock()
	return nil
}

// Add inserts a draft remotely and appends the stored card to the mirror.
func (s *Store) Add(ctx context.Context, draft models.CardDraft) (models.Card, error) {
	s.mu.RLock()
	ownerID := s.ownerID
	s.mu.RUnlock()

	if ownerID == "" {
		return models.Card{}, fmt.Errorf("%w: not signed in", common.ErrPermissionDenied)
	}

	s.setRequest(RequestAdd, Request{State: StatePending})

	card, err := s.remote.Insert(ctx, draft)
	if err != nil {
		s.setRequest(RequestAdd, Request{State: StateRejected, Err: err})
		return models.Card{}, err
	}

	s.mu.Lock()
	if s.ownerID == ownerID {
		s.cards = append(s.cards, card)
		s.requests[RequestAdd] = Request{State: StateFulfilled}
	}
	s.mu.Unlock()
	return card, nil
}

// Update patches an existing card. Unknown ids fail with ErrNotFound before
// any remote call, keeping list cardinality untouched.
func (s *Store) Update(ctx context.Context, id string, patch models.CardPatch) (models.Card, error) {
	unlock := s.lockRecord(id)
	defer unlock()

	s.mu.RLock()
	ownerID := s.ownerID
	_, known := s.find(id)
	s.mu.RUnlock()
	if !known {
		err := fmt.Errorf("%w: card %s", common.ErrNotFound, id)
		s.setRequest(id, Request{State: StateRejected, Err: err})
		return models.Card{}, err
	}

	s.setRequest(id, Request{State: StatePending})

	card, err := s.remote.Patch(ctx, id, patch)
	if err != nil {
		s.setRequest(id, Request{State: StateRejected, Err: err})
		return models.Card{}, err
	}

	s.mu.Lock()
	if s.ownerID == ownerID {
		for i := range s.cards {
			if s.cards[i].ID == id {
				s.cards[i] = card
				break
			}
		}
		s.requests[id] = Request{State: StateFulfilled}
	}
	s.mu.Unlock()
	return card, nil
}

// Delete removes a card remotely and drops it from the mirror. The other
// records keep their positions.
func (s *Store) Delete(ctx context.Context, id string) error {
	unlock := s.lockRecord(id)
	defer unlock()

	s.mu.RLock()
	ownerID := s.ownerID
	_, known := s.find(id)
	s.mu.RUnlock()
	if !known {
		err := fmt.Errorf("%w: card %s", common.ErrNotFound, id)
		s.setRequest(id, Request{State: StateRejected, Err: err})
		return err
	}

	s.setRequest(id, Request{State: StatePending})

	if err := s.remote.Remove(ctx, id); err != nil {
		s.setRequest(id, Request{State: StateRejected, Err: err})
		return err
	}

	s.mu.Lock()
	if s.ownerID == ownerID {
		for i := range s.cards {
			if s.cards[i].ID == id {
				s.cards = append(s.cards[:i], s.cards[i+1:]...)
				break
			}
		}
		s.requests[id] = Request{State: StateFulfilled}
	}
	s.mu.Unlock()
	return nil
}

// List returns a copy of the mirror in its stored order.
func (s *Store) List() []models.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// Get returns the mirrored card with the given id.
func (s *Store) Get(id string) (models.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if card, ok := s.find(id); ok {
		return card, nil
	}
	return models.Card{}, fmt.Errorf("%w: card %s", common.ErrNotFound, id)
}

// ByCategory returns the mirrored cards in the given category, keeping order.
func (s *Store) ByCategory(category string) []models.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Card
	for _, c := range s.cards {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

// Categories returns the distinct categories present in the mirror, sorted.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]struct{}{}
	var out []string
	for _, c := range s.cards {
		if _, ok := seen[c.Category]; !ok {
			seen[c.Category] = struct{}{}
			out = append(out, c.Category)
		}
	}
	sort.Strings(out)
	return out
}

// find must be called with mu held (read or write).
func (s *Store) find(id string) (models.Card, bool) {
	for _, c := range s.cards {
		if c.ID == id {
			return c, true
		}
	}
	return models.Card{}, false
}

// lockRecord serializes mutations of a single record id.
func (s *Store) lockRecord(id string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}
