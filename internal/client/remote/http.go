package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cardkeep/cardkeep/internal/client/models"
	"github.com/cardkeep/cardkeep/internal/common"
)

// Client talks JSON over HTTP to the CardKeep server and implements the Auth,
// CardStore and Exporter capabilities.
type Client struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	identity     *models.Identity
	accessToken  string
	refreshToken string
	subscribers  map[int]func(*models.Identity)
	nextSub      int
}

// NewClient constructs a Client for the given base URL, e.g.
// "http://localhost:8080".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     baseURL,
		http:        &http.Client{Timeout: timeout},
		subscribers: map[int]func(*models.Identity){},
	}
}

type sessionResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"display_name"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type errResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

func (c *Client) Register(ctx context.Context, name, email, password string) (*models.Identity, error) {
	var session sessionResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register",
		map[string]string{"name": name, "email": email, "password": password}, &session, false)
	if err != nil {
		return nil, err
	}
	return c.startSession(session), nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	var session sessionResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &session, false)
	if err != nil {
		return nil, err
	}
	return c.startSession(session), nil
}

func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	token := c.refreshToken
	c.mu.Unlock()

	if token != "" {
		// Best effort: the local session ends even if the server call fails.
		_ = c.do(ctx, http.MethodPost, "/api/auth/logout",
			map[string]string{"refresh_token": token}, nil, false)
	}

	c.endSession()
	return nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/reset",
		map[string]string{"email": email}, nil, false)
}

func (c *Client) Subscribe(fn func(*models.Identity)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subscribers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

func (c *Client) Current() *models.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

func (c *Client) startSession(session sessionResponse) *models.Identity {
	identity := &models.Identity{ID: session.ID, Email: session.Email, DisplayName: session.DisplayName}

	c.mu.Lock()
	c.identity = identity
	c.accessToken = session.AccessToken
	c.refreshToken = session.RefreshToken
	subs := c.snapshotSubscribers()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(identity)
	}
	return identity
}

func (c *Client) endSession() {
	c.mu.Lock()
	c.identity = nil
	c.accessToken = ""
	c.refreshToken = ""
	subs := c.snapshotSubscribers()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(nil)
	}
}

// snapshotSubscribers must be called with mu held.
func (c *Client) snapshotSubscribers() []func(*models.Identity) {
	subs := make([]func(*models.Identity), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

// refresh exchanges the stored refresh token for a new token pair. On failure
// the session ends so subscribers learn about the sign-out.
func (c *Client) refresh(ctx context.Context) error {
	c.mu.Lock()
	token := c.refreshToken
	c.mu.Unlock()

	if token == "" {
		return common.ErrPermissionDenied
	}

	var session sessionResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/refresh",
		map[string]string{"refresh_token": token}, &session, false)
	if err != nil {
		c.endSession()
		return err
	}

	c.startSession(session)
	return nil
}

// --- CardStore ---

func (c *Client) Query(ctx context.Context, ownerID string) ([]models.Card, error) {
	identity := c.Current()
	if identity == nil || identity.ID != ownerID {
		return nil, fmt.Errorf("%w: no session for owner %s", common.ErrPermissionDenied, ownerID)
	}

	var body struct {
		Cards []models.Card `json:"cards"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/cards", nil, &body, true); err != nil {
		return nil, err
	}
	return body.Cards, nil
}

func (c *Client) Insert(ctx context.Context, draft models.CardDraft) (models.Card, error) {
	var card models.Card
	if err := c.do(ctx, http.MethodPost, "/api/cards", draft, &card, true); err != nil {
		return models.Card{}, err
	}
	return card, nil
}

func (c *Client) Patch(ctx context.Context, id string, patch models.CardPatch) (models.Card, error) {
	var card models.Card
	if err := c.do(ctx, http.MethodPatch, "/api/cards/"+id, patch, &card, true); err != nil {
		return models.Card{}, err
	}
	return card, nil
}

func (c *Client) Remove(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/cards/"+id, nil, nil, true)
}

// --- Exporter ---

func (c *Client) Export(ctx context.Context, format string) (string, error) {
	var body struct {
		URL string `json:"url"`
	}
	err := c.do(ctx, http.MethodPost, "/api/export", map[string]string{"format": format}, &body, true)
	if err != nil {
		return "", err
	}
	return body.URL, nil
}

// --- plumbing ---

// do performs one JSON request. Authenticated calls that come back 401 are
// retried once after a token refresh.
func (c *Client) do(ctx context.Context, method, path string, in, out any, authed bool) error {
	status, err := c.once(ctx, method, path, in, out, authed)
	if err != nil && authed && status == http.StatusUnauthorized {
		if rerr := c.refresh(ctx); rerr != nil {
			return err
		}
		_, err = c.once(ctx, method, path, in, out, authed)
	}
	return err
}

func (c *Client) once(ctx context.Context, method, path string, in, out any, authed bool) (int, error) {
	var reader io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		c.mu.Lock()
		token := c.accessToken
		c.mu.Unlock()
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return resp.StatusCode, statusError(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("error decoding response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// statusError converts an error response into the common taxonomy, keeping
// the server's message.
func statusError(resp *http.Response) error {
	var body errResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	msg := body.Error
	if msg == "" {
		msg = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrValidation, msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", common.ErrPermissionDenied, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", common.ErrAlreadyExists, msg)
	default:
		return fmt.Errorf("%w: %s", common.ErrRemoteUnavailable, msg)
	}
}
