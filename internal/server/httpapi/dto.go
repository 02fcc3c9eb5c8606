package httpapi

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/cardkeep/cardkeep/internal/server/models"
	"github.com/cardkeep/cardkeep/internal/server/services"
)

// --- auth ---

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 128)),
	)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type resetRequest struct {
	Email string `json:"email"`
}

func (r resetRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
	)
}

type resetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (r resetConfirmRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 128)),
	)
}

type sessionResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"display_name"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func newSessionResponse(u *models.User, t *services.TokenPair) sessionResponse {
	return sessionResponse{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
	}
}

// --- cards ---

type cardRequest struct {
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

// Validate is advisory: no field is strictly required, but fields that are
// present must be well-formed.
func (r cardRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, is.EmailFormat),
		validation.Field(&r.Website, is.URL),
	)
}

func (r cardRequest) toModel() *models.Card {
	return &models.Card{
		Name:     r.Name,
		Title:    r.Title,
		Company:  r.Company,
		Email:    r.Email,
		Phone:    r.Phone,
		Website:  r.Website,
		Address:  r.Address,
		Notes:    r.Notes,
		Category: r.Category,
	}
}

type cardPatchRequest struct {
	Name     *string `json:"name"`
	Title    *string `json:"title"`
	Company  *string `json:"company"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Website  *string `json:"website"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
	Category *string `json:"category"`
}

func (r cardPatchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, is.EmailFormat),
		validation.Field(&r.Website, is.URL),
	)
}

func (r cardPatchRequest) toModel() *models.CardPatch {
	return &models.CardPatch{
		Name:     r.Name,
		Title:    r.Title,
		Company:  r.Company,
		Email:    r.Email,
		Phone:    r.Phone,
		Website:  r.Website,
		Address:  r.Address,
		Notes:    r.Notes,
		Category: r.Category,
	}
}

type cardResponse struct {
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

func newCardResponse(c *models.Card) cardResponse {
	return cardResponse{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Name:      c.Name,
		Title:     c.Title,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
		Website:   c.Website,
		Address:   c.Address,
		Notes:     c.Notes,
		Category:  c.Category,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// --- export ---

type exportRequest struct {
	Format string `json:"format"`
}

type exportResponse struct {
	URL string `json:"url"`
}
