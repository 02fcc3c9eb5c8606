package repomanager

import (
	"context"
	"database/sql"

	"github.com/cardkeep/cardkeep/internal/dbx"
	"github.com/cardkeep/cardkeep/internal/server/repositories/cards"
	"github.com/cardkeep/cardkeep/internal/server/repositories/passwordresets"
	"github.com/cardkeep/cardkeep/internal/server/repositories/refreshtokens"
	"github.com/cardkeep/cardkeep/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so a
// service can run several repositories inside one transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	PasswordResets(db dbx.DBTX) passwordresets.Repository
	Cards(db dbx.DBTX) cards.Repository
}
