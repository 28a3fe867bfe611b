package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"explbot/cmd/explbot/commands"
	"explbot/logger"
)

var rootCmd = &cobra.Command{
	Use:   "explbot",
	Short: "explbot - persistent explanation glossary for chat",
	Long: `explbot - a persistent explanation glossary behind a chat-command interface.

Users record explanations with !add <term> <explanation> and retrieve
everything recorded for a term with !expl <term>. Entries are append-only;
moderation can hide an entry without disturbing historical numbering.

Available commands:
  serve   - Start the webhook + WebSocket command transport
  db      - Manage the glossary database
  version - Show version information

Examples:
  explbot serve                # Start the command transport
  explbot db stats             # Show glossary statistics
  explbot db disable 17        # Hide entry 17 (moderation)`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonOutput); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if verbosity, _ := cmd.Flags().GetCount("verbose"); verbosity > 0 {
			if err := logger.SetLevel(zapcore.DebugLevel); err != nil {
				return fmt.Errorf("failed to set log level: %w", err)
			}
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit structured JSON logs")

	// Add commands
	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
