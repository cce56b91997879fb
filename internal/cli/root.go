package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/pinboard/internal/config"
	"github.com/alexanderramin/pinboard/internal/gateway"
	"github.com/spf13/cobra"
)

// App holds what CLI commands need. Config is final once flags are parsed;
// Connect then fills in Store, Logger and Serve.
type App struct {
	Config config.Config
	Logger *slog.Logger
	Store  gateway.Gateway

	// Serve runs the REST server until ctx is done. It is nil when notes
	// live on a remote server.
	Serve func(ctx context.Context, addr string) error

	// IsInteractive reports whether stdin is a terminal. A bare "pinboard"
	// opens the board only when it is.
	IsInteractive func() bool

	// Connect wires the stores for the final Config. Tests leave it nil and
	// set Store directly.
	Connect func(app *App) (closer func() error, err error)

	closer func() error
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "pinboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var remote, dbPath string

	root := &cobra.Command{
		Use:           "pinboard",
		Short:         "Sticky notes on an infinite board",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("remote") {
				app.Config.Remote = remote
			}
			if cmd.Flags().Changed("db") {
				app.Config.DBPath = dbPath
			}
			if app.Connect == nil {
				return nil
			}
			closer, err := app.Connect(app)
			if err != nil {
				return err
			}
			app.closer = closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.closer == nil {
				return nil
			}
			err := app.closer()
			app.closer = nil
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runBoard(cmd.Context(), app, app.Config.Zoom)
		},
	}

	root.PersistentFlags().StringVar(&remote, "remote", app.Config.Remote, "Base URL of a pinboard server (empty for the local database)")
	root.PersistentFlags().StringVar(&dbPath, "db", app.Config.DBPath, "Path to the local SQLite database")

	root.AddCommand(
		newBoardCmd(app),
		newNoteCmd(app),
		newTagCmd(app),
		newServeCmd(app),
	)

	return root
}

func requireStore(app *App) error {
	if app.Store == nil {
		return fmt.Errorf("no note store configured")
	}
	return nil
}
