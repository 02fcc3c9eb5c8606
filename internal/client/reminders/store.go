// Package reminders manages follow-up reminders for contacts. Reminders live
// on the client only: they reference a contact by id and keep a denormalized
// contact name, so edits or deletes of the contact never touch them.
package reminders

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cardkeep/cardkeep/internal/client/models"
	repo "github.com/cardkeep/cardkeep/internal/client/repositories/reminders"
	"github.com/cardkeep/cardkeep/internal/common"
	"github.com/cardkeep/cardkeep/internal/logging"
)

// scheduleLayout renders a reminder time like "Mon, Sep 1, 3:00 PM".
const scheduleLayout = "Mon, Jan 2, 3:04 PM"

// Store holds reminders in memory, newest first, and writes every mutation
// through to the local repository when one is configured.
type Store struct {
	repo   repo.Repository
	logger logging.Logger
	now    func() time.Time

	mu    sync.RWMutex
	items []models.Reminder
}

// NewStore constructs a Store. repo may be nil, in which case reminders live
// only for the process lifetime.
func NewStore(repo repo.Repository, logger logging.Logger) *Store {
	return &Store{repo: repo, logger: logger, now: time.Now}
}

// Load replaces the in-memory list with the repository's contents. A nil
// repository makes Load a no-op.
func (s *Store) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	items, err := s.repo.SelectAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "error loading reminders", "error", err)
		return err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Add creates a reminder. Blank titles and contact names (after trimming) are
// rejected with common.ErrValidation; a zero scheduledAt defaults to now.
func (s *Store) Add(ctx context.Context, title, contactID, contactName string, scheduledAt time.Time) (models.Reminder, error) {
	title = strings.TrimSpace(title)
	contactName = strings.TrimSpace(contactName)
	if title == "" {
		return models.Reminder{}, fmt.Errorf("%w: reminder title cannot be blank", common.ErrValidation)
	}
	if contactName == "" {
		return models.Reminder{}, fmt.Errorf("%w: reminder contact name cannot be blank", common.ErrValidation)
	}
	if scheduledAt.IsZero() {
		scheduledAt = s.now()
	}

	reminder := models.Reminder{
		ID:          uuid.NewString(),
		ContactID:   contactID,
		ContactName: contactName,
		Title:       title,
		ScheduledAt: scheduledAt,
	}

	if s.repo != nil {
		if err := s.repo.Insert(ctx, reminder); err != nil {
			return models.Reminder{}, err
		}
	}

	s.mu.Lock()
	s.items = append([]models.Reminder{reminder}, s.items...)
	s.mu.Unlock()
	return reminder, nil
}

// Toggle flips the completed flag of the reminder with the given id. Toggling
// twice restores the original state.
func (s *Store) Toggle(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.index(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: reminder %s", common.ErrNotFound, id)
	}
	completed := !s.items[idx].Completed
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.SetCompleted(ctx, id, completed); err != nil {
			return err
		}
	}

	s.mu.Lock()
	if idx := s.index(id); idx >= 0 {
		s.items[idx].Completed = completed
	}
	s.mu.Unlock()
	return nil
}

// Delete removes the reminder with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.RLock()
	idx := s.index(id)
	s.mu.RUnlock()
	if idx < 0 {
		return fmt.Errorf("%w: reminder %s", common.ErrNotFound, id)
	}

	if s.repo != nil {
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
	}

	s.mu.Lock()
	if idx := s.index(id); idx >= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	}
	s.mu.Unlock()
	return nil
}

// List returns a copy of all reminders, newest first.
func (s *Store) List() []models.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Reminder, len(s.items))
	copy(out, s.items)
	return out
}

// Partition splits the reminders into active and completed groups. Within
// each group the stored order is preserved.
func (s *Store) Partition() (active, completed []models.Reminder) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.items {
		if r.Completed {
			completed = append(completed, r)
		} else {
			active = append(active, r)
		}
	}
	return active, completed
}

// FormatSchedule renders a reminder time for display, e.g. "Mon, Sep 1, 3:00 PM".
func FormatSchedule(t time.Time) string {
	return t.Format(scheduleLayout)
}

// index must be called with mu held (read or write).
func (s *Store) index(id string) int {
	for i, r := range s.items {
		if r.ID == id {
			return i
		}
	}
	return -1
}
