package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/brewhaven/internal/client/client"
	"github.com/dmitrijs2005/brewhaven/internal/common"
)

func (a *App) prompt() prompter {
	return prompter{r: a.reader, w: a.out}
}

// Signup prompts for name, email and a confirmed password and creates an
// account.
func (a *App) Signup(ctx context.Context) error {
	p := a.prompt()

	name, err := p.line("Name")
	if err != nil {
		return err
	}
	email, err := p.email()
	if err != nil {
		return err
	}

	password, err := p.newPassword()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	profile, err := a.authService.Signup(ctx, name, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account created: %s <%s> (id %s)\n", profile.Name, profile.Email, profile.ID)
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	p := a.prompt()

	email, err := p.email()
	if err != nil {
		return err
	}

	password, err := p.password("Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			return fmt.Errorf("cannot reach %s: %w", a.config.ServerURL, err)
		}
		return err
	}

	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	p, err := a.authService.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return fmt.Errorf("session expired, please log in again: %w", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "id:    %s\nname:  %s\nemail: %s\n", p.ID, p.Name, p.Email)
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.authService.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Server is up")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
