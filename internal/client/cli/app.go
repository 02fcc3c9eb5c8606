// Package cli implements the interactive terminal client: a small REPL over
// the contact mirror, the local reminder store and the scan capability.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/cardkeep/cardkeep/internal/client/config"
	"github.com/cardkeep/cardkeep/internal/client/contacts"
	"github.com/cardkeep/cardkeep/internal/client/models"
	"github.com/cardkeep/cardkeep/internal/client/reminders"
	"github.com/cardkeep/cardkeep/internal/client/remote"
	remindersrepo "github.com/cardkeep/cardkeep/internal/client/repositories/reminders"
	"github.com/cardkeep/cardkeep/internal/client/scan"
	"github.com/cardkeep/cardkeep/internal/client/storage"
	"github.com/cardkeep/cardkeep/internal/logging"
)

// App wires the client stores to the terminal.
type App struct {
	config    *config.Config
	logger    logging.Logger
	auth      remote.Auth
	exporter  remote.Exporter
	contacts  *contacts.Store
	reminders *reminders.Store
	scanner   scan.Capability

	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database and connects all client components.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, cfg.DatabaseFile)
	if err != nil {
		logger.Error(ctx, "error initializing local database", "error", err)
		return nil, err
	}

	client := remote.NewClient(cfg.ServerEndpointAddr, cfg.RequestTimeout)

	app := &App{
		config:    cfg,
		logger:    logger,
		auth:      client,
		exporter:  client,
		contacts:  contacts.NewStore(client, logger),
		reminders: reminders.NewStore(remindersrepo.NewSqliteRepository(db), logger),
		scanner:   scan.NewMockScanner(),
		db:        db,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}

	// The contact mirror follows the identity: sign-in loads the new owner's
	// cards, sign-out clears everything.
	client.Subscribe(func(identity *models.Identity) {
		if identity == nil {
			app.contacts.SetOwner("")
			return
		}
		app.contacts.SetOwner(identity.ID)
		if err := app.contacts.FetchAll(ctx); err != nil {
			fmt.Fprintf(app.out, "Could not load contacts: %v\n", err)
		}
	})

	if err := app.reminders.Load(ctx); err != nil {
		logger.Warn(ctx, "error loading reminders", "error", err)
	}

	return app, nil
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.auth.Current() != nil
}
