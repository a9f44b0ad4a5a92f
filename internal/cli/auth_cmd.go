package cli

import (
	"bufio"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/auth"
	"github.com/idilsaglam/todo/internal/ui"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Token authentication for the item server",
		Args: func(cmd *cobra.Command, args []string) error {
			return usagef("usage: todo auth <login|logout|status|whoami>")
		},
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "login",
			Short: "Save a bearer token",
			Args:  noArgs("auth login"),
			RunE:  func(cmd *cobra.Command, args []string) error { return doAuthLogin(app) },
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Delete the saved token",
			Args:  noArgs("auth logout"),
			RunE:  func(cmd *cobra.Command, args []string) error { return doAuthLogout(app) },
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show where the token comes from",
			Args:  noArgs("auth status"),
			RunE:  func(cmd *cobra.Command, args []string) error { return doAuthStatus(app) },
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Decode the token payload when it is a JWT",
			Args:  noArgs("auth whoami"),
			RunE:  func(cmd *cobra.Command, args []string) error { return doAuthWhoAmI(app) },
		},
	)
	return cmd
}

func doAuthLogin(app *App) error {
	creds, err := app.credentials()
	if err != nil {
		return err
	}
	token, err := readToken(app)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if err := creds.Set(token, nil); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	ui.OK(app.Out, "logged in")
	return nil
}

func readToken(app *App) (string, error) {
	var token string
	if app.IsInteractive != nil && app.IsInteractive() {
		input := huh.NewInput().
			Title("Paste your token").
			EchoMode(huh.EchoModePassword).
			Value(&token).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return auth.ErrEmptyToken
				}
				return nil
			})
		if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
			return "", err
		}
		return token, nil
	}

	sc := bufio.NewScanner(app.In)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", auth.ErrEmptyToken
	}
	return sc.Text(), nil
}

func doAuthLogout(app *App) error {
	creds, err := app.credentials()
	if err != nil {
		return err
	}
	ti, _ := creds.Get()
	if ti != nil && ti.Source == auth.SourceEnv {
		ui.OK(app.Out, "token is provided by "+auth.EnvToken+" env var (nothing to delete)")
		return nil
	}
	if err := creds.Delete(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	ui.OK(app.Out, "logged out")
	return nil
}

func doAuthStatus(app *App) error {
	creds, err := app.credentials()
	if err != nil {
		return err
	}
	ti, err := creds.Get()
	if err != nil {
		return fmt.Errorf("credentials: %w", err)
	}
	if ti == nil {
		ui.Hint(app.Out, "not logged in")
		fmt.Fprintln(app.Out, "Run: todo auth login")
		return nil
	}
	fmt.Fprintf(app.Out, "source: %s\n", ti.Source)
	if ti.ExpiresAt != nil {
		fmt.Fprintf(app.Out, "expires: %s\n", ti.ExpiresAt.UTC().Format(time.RFC3339))
	} else {
		fmt.Fprintln(app.Out, "expires: (unknown)")
	}
	fmt.Fprintln(app.Out, "env override: "+auth.EnvToken)
	return nil
}

// whoami decodes a JWT payload locally (unsigned); opaque tokens print basic info.
func doAuthWhoAmI(app *App) error {
	creds, err := app.credentials()
	if err != nil {
		return err
	}
	ti, _ := creds.Get()
	if ti == nil {
		return usagef("not logged in. Run: todo auth login")
	}
	parts := strings.Split(ti.Token, ".")
	if len(parts) == 3 {
		if p, err := decodeB64URL(parts[1]); err == nil {
			fmt.Fprintln(app.Out, "JWT payload:")
			fmt.Fprintln(app.Out, p)
			return nil
		}
	}
	fmt.Fprintln(app.Out, "Opaque token (cannot introspect locally).")
	fmt.Fprintln(app.Out, "source:", ti.Source)
	return nil
}

func decodeB64URL(s string) (string, error) {
	dec, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return "", errors.Join(errors.New("not base64url"), err)
	}
	return string(dec), nil
}
