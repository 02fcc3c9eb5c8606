// Package cards provides the PostgreSQL-backed repository for contact cards.
package cards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cardkeep/cardkeep/internal/common"
	"github.com/cardkeep/cardkeep/internal/dbx"
	"github.com/cardkeep/cardkeep/internal/server/models"
)

const cardColumns = `id, owner_id, name, title, company, email, phone, website, address, notes, category, created_at, updated_at`

// PostgresRepository implements card storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// SelectByOwner returns every card whose owner_id matches ownerID.
func (r *PostgresRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE owner_id=$1 ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select cards: %w", err)
	}
	defer rows.Close()

	var result []*models.Card
	for rows.Next() {
		item, err := scanCard(rows)
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

// Insert stores a new card. Empty categories collapse to the default.
func (r *PostgresRepository) Insert(ctx context.Context, card *models.Card) (*models.Card, error) {
	if card.Category == "" {
		card.Category = common.DefaultCategory
	}
	query := `
		INSERT INTO cards (owner_id, name, title, company, email, phone, website, address, notes, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		card.OwnerID, card.Name, card.Title, card.Company, card.Email, card.Phone,
		card.Website, card.Address, card.Notes, card.Category,
	).Scan(&card.ID, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return card, nil
}

// Patch merges non-nil fields into the stored row and refreshes updated_at.
// A card belonging to another owner behaves exactly like a missing card.
func (r *PostgresRepository) Patch(ctx context.Context, ownerID, id string, patch *models.CardPatch) (*models.Card, error) {
	query := `
		UPDATE cards SET
			name = COALESCE($3, name),
			title = COALESCE($4, title),
			company = COALESCE($5, company),
			email = COALESCE($6, email),
			phone = COALESCE($7, phone),
			website = COALESCE($8, website),
			address = COALESCE($9, address),
			notes = COALESCE($10, notes),
			category = COALESCE($11, category),
			updated_at = now()
		WHERE id=$1 AND owner_id=$2
		RETURNING ` + cardColumns
	row := r.db.QueryRowContext(ctx, query, id, ownerID,
		patch.Name, patch.Title, patch.Company, patch.Email, patch.Phone,
		patch.Website, patch.Address, patch.Notes, patch.Category)

	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return card, nil
}

// Remove deletes a card owned by ownerID. Missing or foreign cards yield
// common.ErrNotFound.
func (r *PostgresRepository) Remove(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCard(s scanner) (*models.Card, error) {
	var c models.Card
	err := s.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Title, &c.Company, &c.Email, &c.Phone,
		&c.Website, &c.Address, &c.Notes, &c.Category, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
