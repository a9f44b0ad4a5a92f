package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/board"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/ui"
)

const maxNameWidth = 80

func newLsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List items",
		Args:  noArgs("ls"),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.service(app.logger)
			if err != nil {
				return err
			}
			st := board.NewStore(svc, app.logger)
			defer st.Close()

			if err := st.Initialize(cmd.Context()); err != nil {
				return fmt.Errorf("load: %w", err)
			}
			printItems(app.Out, st.Snapshot().Items)
			return nil
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name...>",
		Short: "Add a new item (name can be multiple words)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: todo add <name...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if board.IsBlank(name) {
				return usagef("add: empty name")
			}

			svc, err := app.service(app.logger)
			if err != nil {
				return err
			}
			st := board.NewStore(svc, app.logger)
			defer st.Close()

			// The list is only context here; a failed load must not block the add.
			if err := st.Initialize(cmd.Context()); err != nil {
				app.logger.Warn("could not load items before add", "err", err)
			}
			st.UpdateDraft(name)
			if err := st.SubmitDraft(cmd.Context()); err != nil {
				return fmt.Errorf("add: %w", err)
			}

			snap := st.Snapshot()
			created := snap.Items[len(snap.Items)-1]
			ui.OK(app.Out, fmt.Sprintf("added #%s %s", created.ID, created.Name))
			return nil
		},
	}
}

func noArgs(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return usagef("usage: todo %s", name)
		}
		return nil
	}
}

// -------------- rendering helpers --------------

func printItems(w io.Writer, items []model.Item) {
	t := ui.Current()
	header := fmt.Sprintf("%s   %s %d",
		t.Title.Render("Todo List"),
		t.Accent.Render("Total"), len(items),
	)

	lines := []string{header, ""}
	lines = append(lines, flatLines(items)...)
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(w, lines)
}

func flatLines(items []model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		idx := fmt.Sprintf("%2d.", i+1)
		name := it.Name
		if r := []rune(name); len(r) > maxNameWidth {
			name = string(r[:maxNameWidth-3]) + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s", t.Muted.Render(idx), t.Pending.Render(t.SymItem), name))
	}
	return out
}
