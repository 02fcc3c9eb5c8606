package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	if identity := a.auth.Current(); identity != nil {
		return fmt.Sprintf("(%s)", identity.Email)
	}
	return ""
}

// Root runs the read-eval-print loop. It exits on EOF or when the user types
// "exit" or "quit". Command handlers print their own errors, keeping the loop
// itself free of error handling. Prompted commands read follow-up lines from
// the same reader, so the loop must not buffer ahead of them.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to CardKeep CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "ck %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "reset":
			a.resetPassword(ctx)
		case "l", "list":
			a.list(args)
		case "show":
			a.show(args)
		case "add":
			a.add(ctx)
		case "edit":
			a.edit(ctx, args)
		case "del", "delete":
			a.delete(ctx, args)
		case "scan":
			a.scan(ctx)
		case "rem":
			a.rem(ctx, args)
		case "export":
			a.export(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Available commands: (l)ist [category], show <id>, add, edit <id>, del <id>, scan, rem <add|list|done|del>, export [csv|vcf], logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: register, login, reset, rem <add|list|done|del>, exit")
	}
}
