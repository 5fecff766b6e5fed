package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/get2knowio/deacon/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .maverick/config.yaml in the current directory",
	Long: `Writes a config.yaml seeded from any configuration already present in
the environment, with blank entries for the rest. Refuses to overwrite
an existing file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		values := make(map[string]string)
		for key := range config.KnownKeys {
			if v := config.GetString(key); v != "" {
				values[key] = v
			}
		}

		path, err := config.WriteDefaultYaml(cwd, values)
		if err != nil {
			return err
		}
		fmt.Printf("Created %s\n", path)
		return nil
	},
}
