// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export summaries to the notes vault",
	Long: `Export writes each selected paper's summary into the vault
directory as a Markdown note tagged with the matching interest terms.
With vault.cleanup set it clears the PDF working directory afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportStep(loadConfig(), os.Stdout)
	},
}

func init() {
	exportCmd.Flags().Bool("enabled", false, "enable vault export")
	exportCmd.Flags().String("dir", "vault", "vault directory")

	viper.BindPFlag("vault.enabled", exportCmd.Flags().Lookup("enabled"))
	viper.BindPFlag("vault.dir", exportCmd.Flags().Lookup("dir"))

	rootCmd.AddCommand(exportCmd)
}
