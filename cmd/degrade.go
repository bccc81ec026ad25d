package cmd

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/yagyapandeya/midi-degradation-toolkit/degrade"
	"github.com/yagyapandeya/midi-degradation-toolkit/formats"
	"github.com/yagyapandeya/midi-degradation-toolkit/fsutil"
	"github.com/yagyapandeya/midi-degradation-toolkit/midi"
	"github.com/yagyapandeya/midi-degradation-toolkit/util"
)

var degradeArgs struct {
	inPath      string
	outDir      string
	degradation string
	format      string
	seed        int64
	minPitch    int
	maxPitch    int
	minShift    int
}

func init() {
	rootCmd.AddCommand(degradeCmd)

	f := degradeCmd.Flags()
	f.StringVar(&degradeArgs.inPath, "in", "", "The note file (mid or csv) to degrade")
	f.StringVar(&degradeArgs.outDir, "out", "degraded", "The directory to write the degraded file to")
	f.StringVar(&degradeArgs.degradation, "degradation", "",
		"The degradation to apply; leave unset to pick one at random")
	f.StringVar(&degradeArgs.format, "format", "mid", "Output format, mid or csv")
	f.Int64Var(&degradeArgs.seed, "seed", 0, "Random seed; 0 uses the current time")
	f.IntVar(&degradeArgs.minPitch, "min-pitch", 0, "Minimum pitch degradations may produce")
	f.IntVar(&degradeArgs.maxPitch, "max-pitch", 88, "One above the maximum pitch degradations may produce")
	f.IntVar(&degradeArgs.minShift, "min-shift", 40, "Smallest timing change, in ms, a shift may apply")

	degradeCmd.MarkFlagRequired("in")
}

var degradeCmd = &cobra.Command{
	Use:   "degrade",
	Short: "Applies one degradation to a note file",
	Long: `Applies a single named (or randomly selected) degradation to a note
file and writes the degraded copy out under a fresh name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDegrade()
	},
}

func runDegrade() error {
	seq, err := formats.LoadFile(degradeArgs.inPath)
	if err != nil {
		return err
	}

	params := degrade.DefaultParams()
	params.PitchShiftMinPitch = degradeArgs.minPitch
	params.PitchShiftMaxPitch = degradeArgs.maxPitch
	params.AddNoteMinPitch = degradeArgs.minPitch
	params.AddNoteMaxPitch = degradeArgs.maxPitch
	params.TimeShiftMinShift = degradeArgs.minShift
	params.OnsetShiftMinShift = degradeArgs.minShift
	params.OffsetShiftMinShift = degradeArgs.minShift
	if err := params.Validate(); err != nil {
		return err
	}

	seed := degradeArgs.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	registry := degrade.Registry()
	name := degradeArgs.degradation
	if name == "" {
		name = degrade.Names[rng.Intn(len(degrade.Names))]
	}
	op, ok := registry[name]
	if !ok {
		valid := util.GetKeys(registry)
		sort.Strings(valid)
		return fmt.Errorf("unknown degradation %q, choose from %v", name, valid)
	}

	degraded, err := op(seq, rng, params)
	if err != nil {
		return err
	}

	if err := fsutil.MakeDirectory(degradeArgs.outDir, fsutil.OverwriteSkip); err != nil {
		return err
	}
	outPath := filepath.Join(degradeArgs.outDir, uuid.New().String()+"."+degradeArgs.format)

	switch degradeArgs.format {
	case "mid":
		err = midi.WriteNoteSequence(degraded, outPath)
	case "csv":
		err = formats.WriteCSV(degraded, outPath)
	default:
		return fmt.Errorf("format should be mid or csv, not %q", degradeArgs.format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Applied %v (seed %v) to %v, wrote %v\n", name, seed, degradeArgs.inPath, outPath)
	return nil
}
