package cli

import (
	"context"
	"fmt"

	"github.com/cardkeep/cardkeep/internal/client/models"
)

func (a *App) list(args []string) {
	cards := a.contacts.List()
	if len(args) > 0 {
		cards = a.contacts.ByCategory(args[0])
	}
	if len(cards) == 0 {
		fmt.Fprintln(a.out, "No contacts")
		return
	}
	for _, c := range cards {
		fmt.Fprintf(a.out, "%s  %-25s %-20s %s\n", c.ID, c.Name, c.Company, c.Category)
	}
}

func (a *App) show(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return
	}
	card, err := a.contacts.Get(args[0])
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	a.printCard(card)
}

func (a *App) printCard(c models.Card) {
	fmt.Fprintf(a.out, "Name:     %s\n", c.Name)
	fmt.Fprintf(a.out, "Title:    %s\n", c.Title)
	fmt.Fprintf(a.out, "Company:  %s\n", c.Company)
	fmt.Fprintf(a.out, "Email:    %s\n", c.Email)
	fmt.Fprintf(a.out, "Phone:    %s\n", c.Phone)
	fmt.Fprintf(a.out, "Website:  %s\n", c.Website)
	fmt.Fprintf(a.out, "Address:  %s\n", c.Address)
	fmt.Fprintf(a.out, "Notes:    %s\n", c.Notes)
	fmt.Fprintf(a.out, "Category: %s\n", c.Category)
}

// cardFields lists the editable card fields in prompt order.
var cardFields = []struct {
	label string
	get   func(*models.CardDraft) *string
}{
	{"Name", func(d *models.CardDraft) *string { return &d.Name }},
	{"Title", func(d *models.CardDraft) *string { return &d.Title }},
	{"Company", func(d *models.CardDraft) *string { return &d.Company }},
	{"Email", func(d *models.CardDraft) *string { return &d.Email }},
	{"Phone", func(d *models.CardDraft) *string { return &d.Phone }},
	{"Website", func(d *models.CardDraft) *string { return &d.Website }},
	{"Address", func(d *models.CardDraft) *string { return &d.Address }},
	{"Notes", func(d *models.CardDraft) *string { return &d.Notes }},
	{"Category", func(d *models.CardDraft) *string { return &d.Category }},
}

// promptDraft fills draft from the terminal. Pre-filled fields keep their
// value when the user enters nothing.
func (a *App) promptDraft(draft *models.CardDraft) error {
	for _, f := range cardFields {
		dst := f.get(draft)
		prompt := f.label
		if *dst != "" {
			prompt = fmt.Sprintf("%s [%s]", f.label, *dst)
		}
		value, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		if value != "" {
			*dst = value
		}
	}
	return nil
}

func (a *App) add(ctx context.Context) {
	var draft models.CardDraft
	if err := a.promptDraft(&draft); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	a.saveDraft(ctx, draft)
}

func (a *App) saveDraft(ctx context.Context, draft models.CardDraft) {
	card, err := a.contacts.Add(ctx, draft)
	if err != nil {
		fmt.Fprintf(a.out, "Could not save contact: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Saved contact %s\n", card.ID)
}

func (a *App) edit(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: edit <id>")
		return
	}
	card, err := a.contacts.Get(args[0])
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	var patch models.CardPatch
	fields := []struct {
		label   string
		current string
		dst     **string
	}{
		{"Name", card.Name, &patch.Name},
		{"Title", card.Title, &patch.Title},
		{"Company", card.Company, &patch.Company},
		{"Email", card.Email, &patch.Email},
		{"Phone", card.Phone, &patch.Phone},
		{"Website", card.Website, &patch.Website},
		{"Address", card.Address, &patch.Address},
		{"Notes", card.Notes, &patch.Notes},
		{"Category", card.Category, &patch.Category},
	}
	for _, f := range fields {
		value, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%s]", f.label, f.current), a.out)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
		if value != "" {
			v := value
			*f.dst = &v
		}
	}

	updated, err := a.contacts.Update(ctx, card.ID, patch)
	if err != nil {
		fmt.Fprintf(a.out, "Could not update contact: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Updated contact %s\n", updated.ID)
}

func (a *App) delete(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: del <id>")
		return
	}
	if err := a.contacts.Delete(ctx, args[0]); err != nil {
		fmt.Fprintf(a.out, "Could not delete contact: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Deleted")
}

func (a *App) scan(ctx context.Context) {
	fmt.Fprintln(a.out, "Scanning...")
	draft, err := a.scanner.Capture(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Scan failed: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, "Recognized card; review the fields (empty keeps the value):")
	if err := a.promptDraft(&draft); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	a.saveDraft(ctx, draft)
}
