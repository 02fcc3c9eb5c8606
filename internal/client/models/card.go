// Package models defines the client-side domain types: contact cards,
// reminders and the signed-in identity.
package models

import "time"

// Card mirrors one remotely stored business-card contact.
type Card struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Website   string    `json:"website"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CardDraft carries the fields of a card that does not exist remotely yet,
// either typed in manually or produced by a scan.
type CardDraft struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
	Category string `json:"category"`
}

// CardPatch is a partial update; nil fields stay untouched.
type CardPatch struct {
	Name     *string `json:"name,omitempty"`
	Title    *string `json:"title,omitempty"`
	Company  *string `json:"company,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Website  *string `json:"website,omitempty"`
	Address  *string `json:"address,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	Category *string `json:"category,omitempty"`
}

// Apply merges the patch into card, refreshing UpdatedAt.
func (p *CardPatch) Apply(card *Card, now time.Time) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&card.Name, p.Name)
	set(&card.Title, p.Title)
	set(&card.Company, p.Company)
	set(&card.Email, p.Email)
	set(&card.Phone, p.Phone)
	set(&card.Website, p.Website)
	set(&card.Address, p.Address)
	set(&card.Notes, p.Notes)
	set(&card.Category, p.Category)
	card.UpdatedAt = now
}
