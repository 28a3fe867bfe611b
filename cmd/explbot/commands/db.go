package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"explbot/config"
	"explbot/db"
	"explbot/errors"
	"explbot/glossary"
	"explbot/logger"
)

// DbCmd represents the db (database) command
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the glossary database",
	Long: `db — Manage explbot database operations

Examples:
  explbot db stats             # Show glossary statistics
  explbot db disable 17        # Hide entry 17 from query output (moderation)`,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show glossary statistics",
	RunE:  runDbStats,
}

var dbDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Soft-delete an entry by id",
	Long: `Mark an entry disabled. The row is never removed: later entries keep
their permanent numbering, and the disabled entry simply stops appearing
in !expl output.`,
	Args: cobra.ExactArgs(1),
	RunE: runDbDisable,
}

func init() {
	DbCmd.AddCommand(dbStatsCmd)
	DbCmd.AddCommand(dbDisableCmd)
}

// openStore loads config and opens the migrated database.
func openStore() (*glossary.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load configuration")
	}

	database, err := db.OpenWithMigrations(cfg.Database.Path, logger.Logger)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open database")
	}

	store := glossary.NewStore(database, logger.Logger)
	return store, func() { database.Close() }, nil
}

func runDbStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	store, closeDB, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB()

	total, err := store.Count(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Glossary Statistics\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	fmt.Printf("Database Path: %s\n", cfg.Database.Path)
	fmt.Printf("Total Entries: %d\n", total)
	return nil
}

func runDbDisable(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidRequest, "invalid entry id %q", args[0])
	}

	store, closeDB, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := store.Disable(context.Background(), id); err != nil {
		if errors.IsNotFoundError(err) {
			pterm.Warning.Printf("No entry with id %d\n", id)
			return nil
		}
		return err
	}

	pterm.Success.Printf("Entry %d disabled\n", id)
	return nil
}
