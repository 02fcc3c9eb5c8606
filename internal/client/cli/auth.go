package cli

import (
	"context"
	"fmt"
)

func (a *App) register(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Enter display name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	identity, err := a.auth.Register(ctx, name, email, password)
	if err != nil {
		fmt.Fprintf(a.out, "Registration unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Registered as %s\n", identity.Email)
}

func (a *App) login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	identity, err := a.auth.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(a.out, "Login unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", identity.Email)
}

func (a *App) logout(ctx context.Context) {
	if err := a.auth.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Logged out")
}

func (a *App) resetPassword(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if err := a.auth.RequestPasswordReset(ctx, email); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "If the address is registered, reset instructions have been issued.")
}
