package models

// Identity describes the signed-in user as reported by the auth provider.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}
