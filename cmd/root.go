package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mdtk",
	Short: "MIDI degradation toolkit",
	Long: `Tools for building synthetically degraded symbolic-music datasets
and for measuring the errors a real transcription system makes.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
