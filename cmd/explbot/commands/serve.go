package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"explbot/bot"
	"explbot/config"
	"explbot/db"
	"explbot/errors"
	"explbot/glossary"
	"explbot/logger"
	"explbot/server"
)

// ServeCmd starts the explbot command transport
var ServeCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Start the explbot command transport",
	Long:    `Launch the webhook and WebSocket transport that accepts !add and !expl commands.`,
	RunE:    runServe,
}

var (
	serveListenAddr string
	serveDBPath     string
)

func init() {
	ServeCmd.Flags().StringVar(&serveListenAddr, "listen", "", "Listen address (overrides config)")
	ServeCmd.Flags().StringVar(&serveDBPath, "db-path", "", "Custom database path (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	dbPath := cfg.Database.Path
	if serveDBPath != "" {
		dbPath = serveDBPath
	}
	listenAddr := cfg.Server.ListenAddr
	if serveListenAddr != "" {
		listenAddr = serveListenAddr
	}

	database, err := db.OpenWithMigrations(dbPath, logger.Logger)
	if err != nil {
		return errors.Wrap(err, "failed to open database")
	}
	defer database.Close()

	times, err := glossary.NewTimeFormatter(cfg.Display.Timezone, cfg.Display.TimeFormat)
	if err != nil {
		return errors.Wrap(err, "failed to configure timestamp display")
	}

	store := glossary.NewStore(database, logger.Logger)
	query := glossary.NewQuery(store, times, logger.Logger)
	handler := bot.NewHandler(store, query, cfg.Rate, logger.Logger)

	srv := server.New(handler, listenAddr, cfg.Server.AllowedOrigins, logger.Logger)

	printStartupBanner(listenAddr, dbPath, cfg.Display.Timezone)

	// Start server in background
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Wait for shutdown signal (Ctrl+C)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return errors.Wrap(err, "server failed to start")
	case <-sigChan:
		pterm.Info.Println("\nShutting down gracefully (press Ctrl+C again to force)...")

		shutdownDone := make(chan error, 1)
		go func() {
			shutdownDone <- srv.Stop()
		}()

		select {
		case err := <-shutdownDone:
			if err != nil {
				return errors.Wrap(err, "shutdown error")
			}
			pterm.Success.Println("Server stopped cleanly")
			return nil
		case <-sigChan:
			pterm.Warning.Println("\nForce shutdown - exiting immediately")
			os.Exit(1)
			return nil // unreachable
		}
	}
}
