// Package scan provides the card-scanning capability. Real OCR hardware is
// out of reach for a terminal client, so the default implementation returns a
// fixed capture; ParseText turns already-recognized text lines into a draft.
package scan

import (
	"context"
	"time"

	"github.com/cardkeep/cardkeep/internal/client/models"
)

const captureDelay = 2 * time.Second

// after is a seam so tests can skip the capture delay.
var after = time.After

// Capability captures a business card and returns the recognized fields as a
// draft the user can review before saving.
type Capability interface {
	Capture(ctx context.Context) (models.CardDraft, error)
}

// MockScanner simulates a scan with a two-second capture delay and a fixed
// recognition result.
type MockScanner struct{}

func NewMockScanner() *MockScanner {
	return &MockScanner{}
}

func (s *MockScanner) Capture(ctx context.Context) (models.CardDraft, error) {
	select {
	case <-ctx.Done():
		return models.CardDraft{}, ctx.Err()
	case <-after(captureDelay):
	}
	return models.CardDraft{
		Name:    "Alex Rivera",
		Title:   "UX Designer",
		Company: "Digital Solutions Ltd",
		Email:   "alex@digitalsolutions.com",
		Phone:   "+1 (555) 234-5678",
	}, nil
}
