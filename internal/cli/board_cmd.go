package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/pinboard/internal/board"
	"github.com/alexanderramin/pinboard/internal/gateway"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const (
	// flushTimeout bounds how long quitting waits for queued changes.
	flushTimeout = 5 * time.Second
	// cancelGrace is how long an in-flight write gets to notice
	// cancellation once the flush has timed out.
	cancelGrace = time.Second
)

func newBoardCmd(app *App) *cobra.Command {
	var zoom float64

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if zoom <= 0 {
				return fmt.Errorf("--zoom must be positive")
			}
			return runBoard(cmd.Context(), app, zoom)
		},
	}

	cmd.Flags().Float64Var(&zoom, "zoom", app.Config.Zoom, fmt.Sprintf("Initial zoom (%.2g to %.2g)", board.MinZoom, board.MaxZoom))

	return cmd
}

// runBoard runs the board TUI with a committer writing changes in the
// background, and flushes what is still queued on exit.
func runBoard(ctx context.Context, app *App, zoom float64) error {
	if err := requireStore(app); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := app.logger()

	committer := gateway.NewCommitter(app.Store, logger, gateway.DefaultQueueSize)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := committer.Run(runCtx); err != nil {
			logger.Warn("committer_stopped", "error", err)
		}
	}()

	model := newBoardModel(app.Store, committer, logger, app.Config.Author, zoom)
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx)).Run()

	flushCommitter(committer, cancel, flushTimeout, logger)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	return nil
}

// flushCommitter closes the committer and waits for it to drain. Past
// timeout the remaining ops are cancelled, and it still waits for the op in
// flight so the store is not closed underneath it.
func flushCommitter(c *gateway.Committer, cancel context.CancelFunc, timeout time.Duration, logger *slog.Logger) {
	c.Close()
	select {
	case <-c.Done():
		return
	case <-time.After(timeout):
	}
	logger.Warn("board_flush_timeout", "pending", c.Pending())
	cancel()
	select {
	case <-c.Done():
	case <-time.After(cancelGrace):
		logger.Error("board_flush_abandoned")
	}
}
