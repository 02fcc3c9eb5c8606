// Package models defines the server-side persistence types.
package models

import "time"

// Card is a stored business-card contact. All text fields except OwnerID are
// optional free text; Category falls back to the default when empty.
type Card struct {
	ID        string
	OwnerID   string
	Name      string
	Title     string
	Company   string
	Email     string
	Phone     string
	Website   string
	Address   string
	Notes     string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CardPatch carries a partial update. Nil fields are left unchanged.
type CardPatch struct {
	Name     *string
	Title    *string
	Company  *string
	Email    *string
	Phone    *string
	Website  *string
	Address  *string
	Notes    *string
	Category *string
}
