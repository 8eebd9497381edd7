// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search arXiv for recent submissions matching the interest terms",
	Long: `Search queries the arXiv API for submissions in the configured
category and date window, scores each result against the interest terms,
and writes the ranked candidate listing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return searchStep(cmd.Context(), loadConfig(), os.Stdout)
	},
}

func init() {
	// Flag defaults mirror setDefaults so binding them does not shadow
	// the config file.
	searchCmd.Flags().Int("max-results", 100, "maximum number of feed entries to request")
	searchCmd.Flags().String("categories", "cat:cs.CL OR cat:cs.LG", "arXiv category filter expression")
	searchCmd.Flags().Int("days", 7, "width of the submission date window in days")
	searchCmd.Flags().String("terms-file", "config/search_terms.txt", "path to the interest term list")

	viper.BindPFlag("search.max_results", searchCmd.Flags().Lookup("max-results"))
	viper.BindPFlag("search.categories", searchCmd.Flags().Lookup("categories"))
	viper.BindPFlag("search.date_range_days", searchCmd.Flags().Lookup("days"))
	viper.BindPFlag("search.terms_file", searchCmd.Flags().Lookup("terms-file"))

	rootCmd.AddCommand(searchCmd)
}
