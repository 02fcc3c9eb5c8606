package models

import "time"

// Reminder is a follow-up task linked to a contact. ContactID is a weak
// reference: the contact may be edited or deleted while the reminder lives
// on, so ContactName keeps a denormalized display copy that is never
// re-synced.
type Reminder struct {
	ID          string    `json:"id"`
	ContactID   string    `json:"contact_id"`
	ContactName string    `json:"contact_name"`
	Title       string    `json:"title"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Completed   bool      `json:"completed"`
}
