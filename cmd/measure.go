package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yagyapandeya/midi-degradation-toolkit/constants"
	"github.com/yagyapandeya/midi-degradation-toolkit/excerpt"
	"github.com/yagyapandeya/midi-degradation-toolkit/file"
	"github.com/yagyapandeya/midi-degradation-toolkit/formats"
	"github.com/yagyapandeya/midi-degradation-toolkit/measure"
	"github.com/yagyapandeya/midi-degradation-toolkit/model"
	"github.com/yagyapandeya/midi-degradation-toolkit/util"
)

var measureArgs struct {
	jsonPath      string
	gtDir         string
	gtExt         string
	transDir      string
	transExt      string
	prMinPitch    int
	prMaxPitch    int
	transStart    int
	transEnd      int
	excerptLength int
	minNotes      int
}

func init() {
	rootCmd.AddCommand(measureCmd)

	f := measureCmd.Flags()
	f.StringVar(&measureArgs.jsonPath, "json", "config.json",
		"The file to write the degradation config json data out to")
	f.StringVar(&measureArgs.gtDir, "gt", "",
		"The directory which contains the ground truth musical scores or piano rolls")
	f.StringVar(&measureArgs.gtExt, "gt_ext", "",
		"Restrict the file type for the ground truths (mid, pkl or csv)")
	f.StringVar(&measureArgs.transDir, "trans", "",
		"The directory which contains the transcriptions")
	f.StringVar(&measureArgs.transExt, "trans_ext", "",
		"Restrict the file type for the transcriptions (mid, pkl or csv)")
	f.IntVar(&measureArgs.prMinPitch, "pr-min-pitch", constants.PianoRollMinPitchDefault,
		"Minimum pianoroll pitch")
	f.IntVar(&measureArgs.prMaxPitch, "pr-max-pitch", constants.PianoRollMaxPitchDefault,
		"Maximum pianoroll pitch")
	f.IntVar(&measureArgs.transStart, "trans_start", 0,
		"What time the transcription starts, in ms. Notes before this in the gt "+
			"will be ignored, and all transcribed notes will be shifted forward by this amount")
	f.IntVar(&measureArgs.transEnd, "trans_end", -1,
		"What time the transcription ends, in ms. Notes after this in the gt will "+
			"be ignored, and notes still on will be cut at this time. -1 for none")
	f.IntVar(&measureArgs.excerptLength, "excerpt-length", constants.ExcerptLengthDefault,
		"The length of the excerpt (in ms) to take from each piece")
	f.IntVar(&measureArgs.minNotes, "min-notes", constants.MinNotesDefault,
		"The minimum number of notes required for an excerpt to be valid")

	measureCmd.MarkFlagRequired("gt")
	measureCmd.MarkFlagRequired("trans")
}

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Measures transcription error proportions",
	Long: `Measures which degradation types and how many of each a transcription
system produces, comparing a directory of transcriptions against their
ground truths, and writes the estimated proportions out as json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMeasure()
	},
}

// allowedExts validates an extension restriction flag against the known
// choices. pkl is a known choice the Go toolkit cannot load, so choosing
// it is a configuration error up front.
func allowedExts(flag string) ([]string, error) {
	switch flag {
	case "":
		return constants.FileTypes, nil
	case "mid", "csv":
		return []string{flag}, nil
	case "pkl":
		return nil, fmt.Errorf("pkl files are not supported: convert pickled piano rolls to csv")
	}
	return nil, fmt.Errorf("extension %q not supported, choose from mid, pkl, csv", flag)
}

// loadOrWarn loads a note file, mapping an empty parse to an empty
// sequence and anything else unreadable to a warn-and-skip signal. A csv
// that is not note rows gets a second chance as a piano-roll matrix using
// the --pr-* flags.
func loadOrWarn(path string) (model.NoteSequence, bool) {
	seq, err := formats.LoadFile(path)
	if errors.Is(err, model.ErrNoData) {
		return nil, true
	}
	if err != nil && strings.HasSuffix(path, ".csv") {
		pr, prErr := formats.ReadPianoRollCSV(path, measureArgs.prMinPitch,
			measureArgs.prMaxPitch, constants.PianoRollTimeIncrementDefault)
		if prErr == nil {
			return pr.ToNotes(), true
		}
	}
	if err != nil {
		fmt.Printf("Skipping %v because: %v\n", path, err)
		return nil, false
	}
	return seq, true
}

func runMeasure() error {
	transExts, err := allowedExts(measureArgs.transExt)
	if err != nil {
		return err
	}
	gtExts, err := allowedExts(measureArgs.gtExt)
	if err != nil {
		return err
	}

	var transPaths []string
	for _, ext := range transExts {
		transPaths = append(transPaths, util.GatherPaths(measureArgs.transDir, ext, false, 0)...)
	}

	var total model.DegradationVector
	var cleanTotal float64
	var numFiles int

	for i, transPath := range transPaths {
		fmt.Printf("Processing %v of %v transcriptions\n", i+1, len(transPaths))

		gtPath := file.FindGroundTruth(measureArgs.gtDir, transPath, gtExts)
		if gtPath == "" {
			fmt.Printf("WARNING: No ground truth found for transcription %v. Check that "+
				"the file extension --gt_ext is correct (or not given), and the dir "+
				"--gt is correct\n", transPath)
			continue
		}

		gtSeq, ok := loadOrWarn(gtPath)
		if !ok {
			continue
		}
		transSeq, ok := loadOrWarn(transPath)
		if !ok {
			continue
		}

		// restrict the gt to the span the transcription covers, then put
		// both on the same time basis
		end := measureArgs.transEnd
		if end < 0 {
			end = excerpt.NoEnd
		}
		gtSeq = excerpt.Window(gtSeq, measureArgs.transStart, end)
		if measureArgs.transStart != 0 {
			gtSeq = excerpt.Shift(gtSeq, -measureArgs.transStart)
		}

		proportions, clean := measure.Proportions(gtSeq, transSeq,
			measureArgs.excerptLength, measureArgs.minNotes)
		total.Add(proportions)
		cleanTotal += clean
		numFiles++
	}

	var mean model.DegradationVector
	var cleanMean float64
	if numFiles > 0 {
		for i := range total {
			mean[i] = total[i] / float64(numFiles)
		}
		cleanMean = cleanTotal / float64(numFiles)
	}

	return writeProportions(mean, cleanMean, measureArgs.jsonPath)
}

func writeProportions(proportions model.DegradationVector, clean float64, path string) error {
	out := proportions.ToMap()
	out["clean"] = clean

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %v: %w", path, err)
	}
	fmt.Printf("Wrote degradation proportions to %v\n", path)
	return nil
}
