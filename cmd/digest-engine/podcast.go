// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var podcastCmd = &cobra.Command{
	Use:   "podcast",
	Short: "Synthesize the newsletter digest into an audio podcast",
	Long: `Podcast splits the newsletter digest into sections, synthesizes
each section into speech, and concatenates the clips into a single dated
MP3 file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return podcastStep(cmd.Context(), loadConfig(), os.Stdout)
	},
}

func init() {
	podcastCmd.Flags().Bool("enabled", false, "enable podcast synthesis")
	podcastCmd.Flags().String("voice", "alloy", "synthesis voice")

	viper.BindPFlag("podcast.enabled", podcastCmd.Flags().Lookup("enabled"))
	viper.BindPFlag("podcast.voice", podcastCmd.Flags().Lookup("voice"))

	rootCmd.AddCommand(podcastCmd)
}
