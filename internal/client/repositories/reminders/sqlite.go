package reminders

import (
	"context"
	"fmt"

	"github.com/cardkeep/cardkeep/internal/client/models"
	"github.com/cardkeep/cardkeep/internal/common"
	"github.com/cardkeep/cardkeep/internal/dbx"
)

// SqliteRepository implements reminder storage over a dbx.DBTX backed by the
// local SQLite file.
type SqliteRepository struct {
	db dbx.DBTX
}

func NewSqliteRepository(db dbx.DBTX) *SqliteRepository {
	return &SqliteRepository{db: db}
}

func (r *SqliteRepository) SelectAll(ctx context.Context) ([]models.Reminder, error) {
	// rowid grows with insertion order; created_at only has one-second
	// resolution, which is too coarse to keep reminders newest first.
	query := `
		SELECT id, contact_id, contact_name, title, scheduled_at, completed
		FROM reminders ORDER BY rowid DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select reminders: %w", err)
	}
	defer rows.Close()

	var result []models.Reminder
	for rows.Next() {
		var item models.Reminder
		err := rows.Scan(&item.ID, &item.ContactID, &item.ContactName,
			&item.Title, &item.ScheduledAt, &item.Completed)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SqliteRepository) Insert(ctx context.Context, reminder models.Reminder) error {
	query := `
		INSERT INTO reminders (id, contact_id, contact_name, title, scheduled_at, completed)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, reminder.ID, reminder.ContactID,
		reminder.ContactName, reminder.Title, reminder.ScheduledAt, reminder.Completed)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SqliteRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reminders SET completed=? WHERE id=?`, completed, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res.RowsAffected())
}

func (r *SqliteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res.RowsAffected())
}

func requireRow(n int64, err error) error {
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
