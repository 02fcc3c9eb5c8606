// Package reminders persists follow-up reminders in the client's local
// SQLite database.
package reminders

import (
	"context"

	"github.com/cardkeep/cardkeep/internal/client/models"
)

// Repository is the local persistence contract for reminders.
type Repository interface {
	// SelectAll returns every stored reminder, newest first.
	SelectAll(ctx context.Context) ([]models.Reminder, error)
	Insert(ctx context.Context, reminder models.Reminder) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}
