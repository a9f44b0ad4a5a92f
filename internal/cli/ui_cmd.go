package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/tui"
)

func newUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive list",
		Args:  noArgs("ui"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd.Context(), app)
		},
	}
}

func runUI(ctx context.Context, app *App) error {
	// Console logs would draw over the alternate screen.
	logger := logging.Discard()
	if app.cfg.LogFile != "" {
		logger = app.logger
	}
	svc, err := app.service(logger)
	if err != nil {
		return err
	}
	return tui.Run(ctx, svc, logger)
}
