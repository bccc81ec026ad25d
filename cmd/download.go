package cmd

import (
	"github.com/spf13/cobra"
	"github.com/yagyapandeya/midi-degradation-toolkit/download"
	"github.com/yagyapandeya/midi-degradation-toolkit/fsutil"
)

var downloadArgs struct {
	cacheDir   string
	overwrite  string
	polyphonic bool
	midiOut    string
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	f := downloadCmd.Flags()
	f.StringVar(&downloadArgs.cacheDir, "cache", "",
		"The cache directory to download into (default ~/.mdtk_cache)")
	f.StringVar(&downloadArgs.overwrite, "overwrite", "",
		"What to do with existing files: true replaces them, false fails, unset skips")
	f.BoolVar(&downloadArgs.polyphonic, "poly", false,
		"Download the polyphonic variant instead of the monophonic one")
	f.StringVar(&downloadArgs.midiOut, "midi-out", "",
		"If set, copy the dataset's MIDI files flat into this directory")
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Downloads the PPDD dataset",
	Long:  `Downloads and extracts the Patterns for Prediction Development Dataset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		overwrite, err := fsutil.ParseOverwrite(downloadArgs.overwrite)
		if err != nil {
			return err
		}
		d := download.NewPPDD(!downloadArgs.polyphonic, downloadArgs.cacheDir)
		if err := d.DownloadAndExtract(overwrite); err != nil {
			return err
		}
		if downloadArgs.midiOut != "" {
			return d.CopyMidi(downloadArgs.midiOut, overwrite)
		}
		return nil
	},
}
