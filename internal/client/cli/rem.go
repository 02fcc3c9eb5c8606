package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/cardkeep/cardkeep/internal/client/reminders"
)

// scheduleInputLayout is the format for typing a reminder time, e.g.
// "2026-09-01 15:00". Empty input schedules the reminder for now.
const scheduleInputLayout = "2006-01-02 15:04"

func (a *App) rem(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: rem <add|list|done|del> [id]")
		return
	}
	switch args[0] {
	case "add":
		a.remAdd(ctx)
	case "list":
		a.remList()
	case "done":
		a.remDone(ctx, args[1:])
	case "del", "delete":
		a.remDelete(ctx, args[1:])
	default:
		fmt.Fprintln(a.out, "Unknown subcommand:", args[0])
	}
}

func (a *App) remAdd(ctx context.Context) {
	title, err := GetSimpleText(a.reader, "Reminder title", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	contactID, err := GetSimpleText(a.reader, "Contact id (optional)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	contactName := ""
	if contactID != "" {
		if card, err := a.contacts.Get(contactID); err == nil {
			contactName = card.Name
		}
	}
	if contactName == "" {
		contactName, err = GetSimpleText(a.reader, "Contact name", a.out)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
	}

	when, err := GetSimpleText(a.reader, "When (YYYY-MM-DD HH:MM, empty for now)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	var scheduledAt time.Time
	if when != "" {
		scheduledAt, err = time.ParseInLocation(scheduleInputLayout, when, time.Local)
		if err != nil {
			fmt.Fprintf(a.out, "Could not parse time: %v\n", err)
			return
		}
	}

	reminder, err := a.reminders.Add(ctx, title, contactID, contactName, scheduledAt)
	if err != nil {
		fmt.Fprintf(a.out, "Could not add reminder: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Added reminder %s\n", reminder.ID)
}

func (a *App) remList() {
	active, completed := a.reminders.Partition()
	if len(active) == 0 && len(completed) == 0 {
		fmt.Fprintln(a.out, "No reminders")
		return
	}
	for _, r := range active {
		fmt.Fprintf(a.out, "[ ] %s  %s / %s (%s)\n", r.ID, r.Title, r.ContactName, reminders.FormatSchedule(r.ScheduledAt))
	}
	for _, r := range completed {
		fmt.Fprintf(a.out, "[x] %s  %s / %s (%s)\n", r.ID, r.Title, r.ContactName, reminders.FormatSchedule(r.ScheduledAt))
	}
}

func (a *App) remDone(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: rem done <id>")
		return
	}
	if err := a.reminders.Toggle(ctx, args[0]); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "OK")
}

func (a *App) remDelete(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: rem del <id>")
		return
	}
	if err := a.reminders.Delete(ctx, args[0]); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Deleted")
}
