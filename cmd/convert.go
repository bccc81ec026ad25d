package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yagyapandeya/midi-degradation-toolkit/formats"
	"github.com/yagyapandeya/midi-degradation-toolkit/midi"
	"github.com/yagyapandeya/midi-degradation-toolkit/model"
	"github.com/yagyapandeya/midi-degradation-toolkit/util"
)

var convertArgs struct {
	midiDir   string
	csvDir    string
	recursive bool
}

func init() {
	rootCmd.AddCommand(convertCmd)

	f := convertCmd.Flags()
	f.StringVar(&convertArgs.midiDir, "midi", "", "The directory containing MIDI files")
	f.StringVar(&convertArgs.csvDir, "csv", "", "The directory to write csv files to")
	f.BoolVar(&convertArgs.recursive, "recursive", false, "Search the MIDI directory recursively")

	convertCmd.MarkFlagRequired("midi")
	convertCmd.MarkFlagRequired("csv")
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Converts a directory of MIDI files to csvs",
	Long: `Converts every MIDI file in a directory into a csv of note rows in
another directory, mirroring any nested layout in recursive mode.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert()
	},
}

func runConvert() error {
	paths := util.GatherPaths(convertArgs.midiDir, "mid", convertArgs.recursive, 0)

	for i, midiPath := range paths {
		fmt.Printf("Converting %v of %v midi files\n", i+1, len(paths))

		rel, err := filepath.Rel(convertArgs.midiDir, midiPath)
		if err != nil {
			return err
		}
		csvPath := filepath.Join(convertArgs.csvDir,
			strings.TrimSuffix(rel, filepath.Ext(rel))+".csv")

		seq, err := midi.ReadNoteSequence(midiPath)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", midiPath, err)
			continue
		}
		if err := formats.WriteCSV(seq, csvPath); err != nil {
			if errors.Is(err, model.ErrNoData) {
				fmt.Printf("Skipping %v because it has no notes\n", midiPath)
				continue
			}
			return err
		}
	}
	return nil
}
