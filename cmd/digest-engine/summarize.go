// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize the selected papers and assemble the newsletter",
	Long: `Summarize extracts text from each selected PDF, drives the
configured prompt sequence through the chat model (full history on every
turn), writes one summary file per paper, and rebuilds the newsletter
digest. Papers with an existing summary file are skipped but still
appear in the digest.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return summarizeStep(cmd.Context(), loadConfig(), os.Stdout)
	},
}

func init() {
	summarizeCmd.Flags().String("model", "gpt-4o-mini", "chat model identifier")
	summarizeCmd.Flags().Float64("temperature", 0.7, "sampling temperature")

	viper.BindPFlag("summarize.model", summarizeCmd.Flags().Lookup("model"))
	viper.BindPFlag("summarize.temperature", summarizeCmd.Flags().Lookup("temperature"))

	rootCmd.AddCommand(summarizeCmd)
}
