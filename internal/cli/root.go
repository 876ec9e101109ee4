package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stockpile/internal/format"
	"stockpile/internal/photo"
	"stockpile/internal/store"
	"stockpile/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Storage    string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "stockpile",
		Short:        "Stockpile (local-first) inventory CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  stockpile

  # Scriptable commands
  stockpile items list
  stockpile items add --name "Milk" --quantity 2

  # Direct item lookup (shortcut for: stockpile items show <item-id>)
  stockpile item-001
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("STOCKPILE_DIR", ""), "Path to the store dir (default: ~/.stockpile)")
	cmd.PersistentFlags().StringVar(&app.Storage, "storage", envOr("STOCKPILE_STORAGE", ""), "Snapshot backend (sqlite|json; default: autodetect)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("STOCKPILE_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newItemsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	st, err := openStore(app)
	if err != nil {
		return err
	}
	defer st.Flush()
	return tui.Run(st, photo.FromEnv())
}

// openStore resolves the store dir, binds the snapshot backend and hydrates.
// Hydration itself never fails: a missing or unreadable snapshot falls back
// to the seed dataset.
func openStore(app *App) (*store.Store, error) {
	dir := app.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving store dir: %w", err)
		}
		dir = filepath.Join(home, ".stockpile")
		app.Dir = dir
	}

	st := store.New(store.OpenStorage(dir, store.BackendKind(app.Storage)))
	st.Hydrate()
	return st, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
