package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardkeep/cardkeep/internal/client/config"
	"github.com/cardkeep/cardkeep/internal/client/contacts"
	"github.com/cardkeep/cardkeep/internal/client/models"
	"github.com/cardkeep/cardkeep/internal/client/reminders"
	"github.com/cardkeep/cardkeep/internal/client/scan"
	"github.com/cardkeep/cardkeep/internal/common"
	"github.com/cardkeep/cardkeep/internal/logging"
)

type fakeAuth struct {
	identity    *models.Identity
	password    string
	subscribers []func(*models.Identity)
	resetEmails []string
}

func (f *fakeAuth) Register(ctx context.Context, name, email, password string) (*models.Identity, error) {
	f.identity = &models.Identity{ID: "user1", Email: email, DisplayName: name}
	f.notify(f.identity)
	return f.identity, nil
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	if password != f.password {
		return nil, fmt.Errorf("%w: invalid credentials", common.ErrPermissionDenied)
	}
	f.identity = &models.Identity{ID: "user1", Email: email}
	f.notify(f.identity)
	return f.identity, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.identity = nil
	f.notify(nil)
	return nil
}

func (f *fakeAuth) RequestPasswordReset(ctx context.Context, email string) error {
	f.resetEmails = append(f.resetEmails, email)
	return nil
}

func (f *fakeAuth) Subscribe(fn func(*models.Identity)) func() {
	f.subscribers = append(f.subscribers, fn)
	return func() {}
}

func (f *fakeAuth) Current() *models.Identity { return f.identity }

func (f *fakeAuth) notify(identity *models.Identity) {
	for _, fn := range f.subscribers {
		fn(identity)
	}
}

type fakeCardStore struct {
	cards  []models.Card
	nextID int
}

func (f *fakeCardStore) Query(ctx context.Context, ownerID string) ([]models.Card, error) {
	out := make([]models.Card, len(f.cards))
	copy(out, f.cards)
	return out, nil
}

func (f *fakeCardStore) Insert(ctx context.Context, draft models.CardDraft) (models.Card, error) {
	f.nextID++
	card := models.Card{ID: fmt.Sprintf("c%d", f.nextID), OwnerID: "user1",
		Name: draft.Name, Company: draft.Company, Category: draft.Category}
	f.cards = append(f.cards, card)
	return card, nil
}

func (f *fakeCardStore) Patch(ctx context.Context, id string, patch models.CardPatch) (models.Card, error) {
	for i := range f.cards {
		if f.cards[i].ID == id {
			if patch.Name != nil {
				f.cards[i].Name = *patch.Name
			}
			return f.cards[i], nil
		}
	}
	return models.Card{}, common.ErrNotFound
}

func (f *fakeCardStore) Remove(ctx context.Context, id string) error {
	for i := range f.cards {
		if f.cards[i].ID == id {
			f.cards = append(f.cards[:i], f.cards[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

type fakeExporter struct {
	format string
	url    string
}

func (f *fakeExporter) Export(ctx context.Context, format string) (string, error) {
	f.format = format
	return f.url, nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

// newTestApp builds an App over fakes and an input script. Output is captured
// in the returned buffer.
func newTestApp(t *testing.T, auth *fakeAuth, store *fakeCardStore, input string) (*App, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	logger := testLogger()
	app := &App{
		config:    &config.Config{},
		logger:    logger,
		auth:      auth,
		exporter:  &fakeExporter{url: "https://bucket.example.com/exports/x.csv"},
		contacts:  contacts.NewStore(store, logger),
		reminders: reminders.NewStore(nil, logger),
		scanner:   scan.NewMockScanner(),
		reader:    bufio.NewReader(strings.NewReader(input)),
		out:       out,
	}

	auth.Subscribe(func(identity *models.Identity) {
		if identity == nil {
			app.contacts.SetOwner("")
			return
		}
		app.contacts.SetOwner(identity.ID)
		_ = app.contacts.FetchAll(context.Background())
	})
	return app, out
}

func stubPassword(t *testing.T, password string) {
	t.Helper()
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() { readPassword = orig })
}

func TestRoot_LoginListLogout(t *testing.T) {
	stubPassword(t, "password1")
	auth := &fakeAuth{password: "password1"}
	store := &fakeCardStore{cards: []models.Card{
		{ID: "c1", OwnerID: "user1", Name: "Maria Garcia", Company: "Acme", Category: "Work"},
	}}

	input := strings.Join([]string{
		"login",
		"user@example.com",
		"list",
		"logout",
		"exit",
	}, "\n") + "\n"

	app, out := newTestApp(t, auth, store, input)
	app.Root(context.Background())

	text := out.String()
	assert.Contains(t, text, "Logged in as user@example.com")
	assert.Contains(t, text, "Maria Garcia")
	assert.Contains(t, text, "Logged out")
	assert.Contains(t, text, "Bye!")
}

func TestRoot_LoginFailure(t *testing.T) {
	stubPassword(t, "wrong")
	auth := &fakeAuth{password: "password1"}

	input := "login\nuser@example.com\nexit\n"
	app, out := newTestApp(t, auth, &fakeCardStore{}, input)
	app.Root(context.Background())

	assert.Contains(t, out.String(), "Login unsuccessful")
	assert.Nil(t, auth.Current())
}

func TestRoot_AddAndShow(t *testing.T) {
	stubPassword(t, "password1")
	auth := &fakeAuth{password: "password1"}
	store := &fakeCardStore{}

	// add prompts for 9 fields in order.
	input := strings.Join([]string{
		"login",
		"user@example.com",
		"add",
		"Sarah Johnson", // name
		"CTO",           // title
		"TechStart",     // company
		"sarah@techstart.io",
		"+1 (555) 111-2222",
		"", // website
		"", // address
		"", // notes
		"Clients",
		"show c1",
		"exit",
	}, "\n") + "\n"

	app, out := newTestApp(t, auth, store, input)
	app.Root(context.Background())

	text := out.String()
	assert.Contains(t, text, "Saved contact c1")
	assert.Contains(t, text, "Name:     Sarah Johnson")
	assert.Contains(t, text, "Category: Clients")
	require.Len(t, store.cards, 1)
}

func TestRoot_DeleteUnknownID(t *testing.T) {
	auth := &fakeAuth{}
	input := "del missing\nexit\n"
	app, out := newTestApp(t, auth, &fakeCardStore{}, input)
	app.Root(context.Background())

	assert.Contains(t, out.String(), "Could not delete contact")
}

func TestRoot_Reminders(t *testing.T) {
	auth := &fakeAuth{}
	input := strings.Join([]string{
		"rem add",
		"Follow up on proposal", // title
		"",                      // contact id
		"Maria Garcia",          // contact name
		"2026-09-01 15:00",      // when
		"rem list",
		"exit",
	}, "\n") + "\n"

	app, out := newTestApp(t, auth, &fakeCardStore{}, input)
	app.Root(context.Background())

	text := out.String()
	assert.Contains(t, text, "Added reminder")
	assert.Contains(t, text, "[ ] ")
	assert.Contains(t, text, "Follow up on proposal")
}

func TestRoot_RemAddValidation(t *testing.T) {
	auth := &fakeAuth{}
	input := strings.Join([]string{
		"rem add",
		"",             // blank title
		"",             // contact id
		"Maria Garcia", // contact name
		"",             // when
		"exit",
	}, "\n") + "\n"

	app, out := newTestApp(t, auth, &fakeCardStore{}, input)
	app.Root(context.Background())

	assert.Contains(t, out.String(), "Could not add reminder")
}

func TestRoot_Export(t *testing.T) {
	origDownload := downloadFn
	var downloadedURL string
	downloadFn = func(url, path string) error {
		downloadedURL = url
		return nil
	}
	defer func() { downloadFn = origDownload }()

	auth := &fakeAuth{}
	app, out := newTestApp(t, auth, &fakeCardStore{}, "export vcf\nexit\n")
	app.Root(context.Background())

	assert.Contains(t, out.String(), "Exported contacts to cards.vcf")
	assert.Equal(t, "https://bucket.example.com/exports/x.csv", downloadedURL)
}

func TestRoot_ResetPassword(t *testing.T) {
	auth := &fakeAuth{}
	app, out := newTestApp(t, auth, &fakeCardStore{}, "reset\nuser@example.com\nexit\n")
	app.Root(context.Background())

	assert.Contains(t, out.String(), "reset instructions")
	assert.Equal(t, []string{"user@example.com"}, auth.resetEmails)
}

func TestRoot_UnknownCommand(t *testing.T) {
	app, out := newTestApp(t, &fakeAuth{}, &fakeCardStore{}, "frobnicate\nexit\n")
	app.Root(context.Background())
	assert.Contains(t, out.String(), "Unknown command: frobnicate")
}
