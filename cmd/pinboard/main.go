package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/pinboard/internal/cli"
	"github.com/alexanderramin/pinboard/internal/config"
	"github.com/alexanderramin/pinboard/internal/db"
	"github.com/alexanderramin/pinboard/internal/gateway"
	"github.com/alexanderramin/pinboard/internal/logging"
	"github.com/alexanderramin/pinboard/internal/repository"
	"github.com/alexanderramin/pinboard/internal/server"
	"github.com/alexanderramin/pinboard/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	logger, logCloser, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer logCloser.Close()

	app := &cli.App{
		Config:  cfg,
		Logger:  logger,
		Connect: connect,
	}

	// The bare command opens the board only on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(context.Background())
}

// connect wires the note store for the final configuration: a remote
// pinboard server when one is configured, the local SQLite file otherwise.
func connect(app *cli.App) (func() error, error) {
	cfg := app.Config

	if cfg.IsRemote() {
		app.Logger.Info("using remote board", "url", cfg.Remote)
		app.Store = gateway.NewCachedCatalog(gateway.NewRemote(cfg.Remote, cfg.Author, cfg.Timeout()), cfg.TagCacheTTL)
		return nil, nil
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Wire repositories and services
	noteRepo := repository.NewSQLiteNoteRepo(database)
	tagRepo := repository.NewSQLiteTagRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(app.Logger)

	notes := service.NewNoteService(noteRepo, uow, cfg.Author, observer)
	tags := service.NewTagService(tagRepo, observer)

	app.Store = gateway.NewCachedCatalog(gateway.NewLocal(notes, tags, cfg.Author), cfg.TagCacheTTL)
	app.Serve = func(ctx context.Context, addr string) error {
		return server.New(notes, tags, app.Logger.With(slog.String("component", "server"))).Run(ctx, addr)
	}

	return database.Close, nil
}
