package scan

import (
	"strings"

	"github.com/cardkeep/cardkeep/internal/client/models"
)

// corpWords mark a line as a company name rather than a person's name.
var corpWords = []string{"ltd", "llc", "inc", "corp", "gmbh", "co.", "company", "solutions", "systems", "group"}

// titleWords mark a line as a job title.
var titleWords = []string{"engineer", "designer", "manager", "director", "developer", "consultant", "analyst", "officer", "founder", "president", "lead", "architect"}

// ParseText maps recognized text lines onto card fields using simple
// heuristics: emails and URLs by shape, phone numbers by digit density,
// company and title lines by keyword, and the first unclaimed line as the
// person's name.
func ParseText(lines []string) models.CardDraft {
	var draft models.CardDraft

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case draft.Email == "" && strings.Contains(line, "@") && strings.Contains(line, "."):
			draft.Email = line
		case draft.Website == "" && looksLikeURL(lower):
			draft.Website = line
		case draft.Phone == "" && looksLikePhone(line):
			draft.Phone = line
		case draft.Company == "" && containsAny(lower, corpWords):
			draft.Company = line
		case draft.Title == "" && containsAny(lower, titleWords):
			draft.Title = line
		case draft.Name == "":
			draft.Name = line
		case draft.Address == "":
			draft.Address = line
		}
	}
	return draft
}

func looksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "www.")
}

// looksLikePhone accepts lines that are mostly digits and phone punctuation.
func looksLikePhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune("+-() .", r):
		default:
			return false
		}
	}
	return digits >= 7
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
