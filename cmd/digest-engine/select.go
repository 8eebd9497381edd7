// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Select the top-K candidates and download their PDFs",
	Long: `Select loads the candidate listing, picks the top-K papers by
relevance score (ties keep discovery order), downloads each PDF to the
working directory, and writes the selection listing. Download failures
abort the step.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return selectStep(cmd.Context(), loadConfig(), os.Stdout)
	},
}

func init() {
	selectCmd.Flags().Int("papers", 5, "number of papers to summarize")

	viper.BindPFlag("selection.number_of_papers_to_summarize", selectCmd.Flags().Lookup("papers"))

	rootCmd.AddCommand(selectCmd)
}
