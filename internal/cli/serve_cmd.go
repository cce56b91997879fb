package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local board over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Serve == nil {
				return fmt.Errorf("serve needs a local database; unset --remote")
			}
			if cmd.Flags().Changed("addr") {
				app.Config.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app.logger().Info("serving board", "addr", app.Config.Addr, "db", app.Config.DBPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", app.Config.Addr)
			if err := app.Serve(ctx, app.Config.Addr); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.Config.Addr, "Listen address")

	return cmd
}
