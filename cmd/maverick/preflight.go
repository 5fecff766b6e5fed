package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/get2knowio/deacon/internal/board"
	"github.com/get2knowio/deacon/internal/config"
	"github.com/get2knowio/deacon/internal/intake"
	"github.com/get2knowio/deacon/internal/ui"
)

var preflightCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Verify credential and board access without touching anything",
	Long: `Runs the same non-mutating checks a poll starts with: does the token
authenticate, and is the configured board visible to it. When the board
check fails, the report lists the boards the token can see.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		client := board.NewClient(cfg.Token)
		results, checkErr := intake.Preflight(rootCtx, client, cfg.Org, cfg.ProjectNumber)

		var lines []string
		for _, r := range results {
			lines = append(lines, ui.RenderCheck(r.Name, r.OK, r.Detail))
		}
		fmt.Print(ui.RenderReport("Preflight", lines, checkErr == nil))

		return checkErr
	},
}
