package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/cardkeep/cardkeep/internal/common"
	"github.com/cardkeep/cardkeep/internal/dbx"
	"github.com/cardkeep/cardkeep/internal/server/models"
	cardsrepo "github.com/cardkeep/cardkeep/internal/server/repositories/cards"
	resetsrepo "github.com/cardkeep/cardkeep/internal/server/repositories/passwordresets"
	refreshrepo "github.com/cardkeep/cardkeep/internal/server/repositories/refreshtokens"
	usersrepo "github.com/cardkeep/cardkeep/internal/server/repositories/users"
)

// --- fake repositories ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmail    map[string]*models.User
	byID       map[string]*models.User
	getErr     error
	updatedPwd map[string][]byte
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "user-1"
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id string, hash []byte) error {
	if f.updatedPwd == nil {
		f.updatedPwd = map[string][]byte{}
	}
	f.updatedPwd[id] = hash
	return nil
}

type fakeRefreshRepo struct {
	created map[string]string // token -> userID
	findOut *models.RefreshToken
	findErr error

	deleted        []string
	deletedForUser []string
	createErr      error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.created == nil {
		f.created = map[string]string{}
	}
	f.created[token] = userID
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return nil
}

func (f *fakeRefreshRepo) DeleteForUser(ctx context.Context, userID string) error {
	f.deletedForUser = append(f.deletedForUser, userID)
	return nil
}

type fakeResetsRepo struct {
	created    map[string]string // token -> userID
	consumeOut *models.PasswordReset
	consumeErr error
}

func (f *fakeResetsRepo) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	if f.created == nil {
		f.created = map[string]string{}
	}
	f.created[token] = userID
	return nil
}

func (f *fakeResetsRepo) Consume(ctx context.Context, token string) (*models.PasswordReset, error) {
	if f.consumeErr != nil {
		return nil, f.consumeErr
	}
	return f.consumeOut, nil
}

type fakeCardsRepo struct {
	selectOut []*models.Card
	selectErr error

	insertErr error
	patchOut  *models.Card
	patchErr  error
	removeErr error
}

func (f *fakeCardsRepo) SelectByOwner(ctx context.Context, ownerID string) ([]*models.Card, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	return f.selectOut, nil
}

func (f *fakeCardsRepo) Insert(ctx context.Context, card *models.Card) (*models.Card, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	card.ID = "card-1"
	return card, nil
}

func (f *fakeCardsRepo) Patch(ctx context.Context, ownerID, id string, patch *models.CardPatch) (*models.Card, error) {
	if f.patchErr != nil {
		return nil, f.patchErr
	}
	return f.patchOut, nil
}

func (f *fakeCardsRepo) Remove(ctx context.Context, ownerID, id string) error {
	return f.removeErr
}

// --- fake repository manager ---

type fakeRepoManager struct {
	users   *fakeUsersRepo
	refresh *fakeRefreshRepo
	resets  *fakeResetsRepo
	cards   *fakeCardsRepo
}

func (f *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return f.users }

func (f *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshrepo.Repository { return f.refresh }

func (f *fakeRepoManager) PasswordResets(db dbx.DBTX) resetsrepo.Repository { return f.resets }

func (f *fakeRepoManager) Cards(db dbx.DBTX) cardsrepo.Repository { return f.cards }
