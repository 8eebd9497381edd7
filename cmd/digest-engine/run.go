// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/digest-engine/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the configured pipeline steps in order",
	Long: `Run executes the pipeline step list from the configuration
(default: search, select, summarize, podcast, export). Steps run
strictly in order; the first failing step aborts the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		var steps []pipeline.Step
		for _, name := range cfg.Steps {
			s, err := stepByName(name, cfg, os.Stdout)
			if err != nil {
				return err
			}
			steps = append(steps, s)
		}
		return pipeline.Run(cmd.Context(), steps, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
