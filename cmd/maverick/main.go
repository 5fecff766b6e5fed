// maverick polls a GitHub Projects v2 board for issues ready to work,
// admits at most one unit of work at a time, and hands the chosen issue
// to the Copilot coding agent via the gh CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/get2knowio/deacon/internal/config"
	"github.com/get2knowio/deacon/internal/debug"
	"github.com/get2knowio/deacon/internal/ui"
)

var (
	verboseFlag bool
	quietFlag   bool

	rootCtx    context.Context
	rootCancel context.CancelFunc
)

var rootCmd = &cobra.Command{
	Use:   "maverick",
	Short: "maverick - intake admission controller for a Projects v2 board",
	Long: `Polls a Projects v2 board for issues in the ready status and starts work
on the lowest-numbered one, holding intake while any item is still in
progress. Running with no subcommand performs one poll.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("maverick version %s (%s)\n", Version, Build)
			return nil
		}
		return runPoll(cmd, args)
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupSignalContext()
		debug.SetVerbose(verboseFlag)
		debug.SetQuiet(quietFlag)
		ui.ConfigurePalette()
		if err := config.Initialize(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	},
}

// setupSignalContext cancels all remote calls on SIGINT/SIGTERM so a
// run interrupted between dispatch and the status mutation fails fast
// instead of hanging on a half-finished request.
func setupSignalContext() {
	rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "suppress non-essential output")
	rootCmd.Flags().Bool("version", false, "print version information")

	rootCmd.AddCommand(pollCmd)
	rootCmd.AddCommand(preflightCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	defer func() {
		if rootCancel != nil {
			rootCancel()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
