// Command managerhub inspects season exports and imports them into the
// local file store.
//
// Usage:
//
//	managerhub parse season.html --json
//	managerhub best-eleven season.html --formation 4-2-3-1
//	managerhub radar season.html --player "Bruno Striker"
//	managerhub import ./exports --data-dir ./data --workers 4
//	managerhub columns
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gamehubfc/managerhub/internal/platform/logging"
)

var logger = logging.NewConsole(os.Stderr, logging.LevelInfo).Named("managerhub")

func main() {
	_ = godotenv.Load(".env")
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "managerhub",
		Short:         "Parse and import football manager season exports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger = logging.NewConsole(os.Stderr, logging.LevelDebug).Named("managerhub")
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")

	root.AddCommand(parseCmd(), bestElevenCmd(), radarCmd(), importCmd(), columnsCmd())
	return root
}
