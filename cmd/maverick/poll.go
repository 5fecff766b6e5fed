package main

import (
	"github.com/spf13/cobra"

	"github.com/get2knowio/deacon/internal/board"
	"github.com/get2knowio/deacon/internal/config"
	"github.com/get2knowio/deacon/internal/dispatch"
	"github.com/get2knowio/deacon/internal/intake"
)

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Run one intake pass over the board",
	Long: `Checks the gate, picks the lowest-numbered ready issue for this
repository, dispatches it to the coding agent, and moves it to the
in-flight status once the agent task is confirmed. A gated board, an
empty ready column, or a failed dispatch all exit zero; only
configuration and transport problems exit non-zero.`,
	RunE: runPoll,
}

func runPoll(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := board.NewClient(cfg.Token)
	d := dispatch.New()
	poller := &intake.Poller{
		Board:      client,
		Dispatcher: d,
		Commenter:  d,
		Config:     *cfg,
	}

	_, err = poller.Run(rootCtx)
	return err
}
