// Package degrade implements the degradation operators: pure functions
// which copy an excerpt and apply exactly one semantic edit to it.
package degrade

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/yagyapandeya/midi-degradation-toolkit/constants"
	"github.com/yagyapandeya/midi-degradation-toolkit/model"
	"github.com/yagyapandeya/midi-degradation-toolkit/util"
)

// Params carries every operator's tunables. Each operator reads only the
// fields carrying its own name prefix, so one Params value can configure a
// whole batch of sampled degradations.
type Params struct {
	// pitch_shift resamples a pitch uniformly from [MinPitch, MaxPitch).
	PitchShiftMinPitch int
	PitchShiftMaxPitch int

	// Smallest timing change, in ms, each shift operator must achieve.
	TimeShiftMinShift   int
	OnsetShiftMinShift  int
	OffsetShiftMinShift int

	// add_note samples a pitch uniformly from [MinPitch, MaxPitch).
	AddNoteMinPitch int
	AddNoteMaxPitch int
}

// DefaultParams returns the documented defaults for every operator.
func DefaultParams() Params {
	return Params{
		PitchShiftMinPitch:  constants.MinPitchDefault,
		PitchShiftMaxPitch:  constants.MaxPitchDefault,
		TimeShiftMinShift:   constants.MinShiftDefault,
		OnsetShiftMinShift:  constants.MinShiftDefault,
		OffsetShiftMinShift: constants.MinShiftDefault,
		AddNoteMinPitch:     constants.MinPitchDefault,
		AddNoteMaxPitch:     constants.MaxPitchDefault,
	}
}

// Validate rejects configurations no operator could ever satisfy.
func (p Params) Validate() error {
	if p.PitchShiftMaxPitch-p.PitchShiftMinPitch <= 1 {
		return fmt.Errorf("pitch_shift range [%v, %v) cannot produce a new pitch",
			p.PitchShiftMinPitch, p.PitchShiftMaxPitch)
	}
	if p.AddNoteMaxPitch <= p.AddNoteMinPitch {
		return fmt.Errorf("add_note range [%v, %v) is empty",
			p.AddNoteMinPitch, p.AddNoteMaxPitch)
	}
	if p.TimeShiftMinShift <= 0 || p.OnsetShiftMinShift <= 0 || p.OffsetShiftMinShift <= 0 {
		return fmt.Errorf("minimum shifts must be positive")
	}
	return nil
}

// Degradation copies excerpt, applies exactly one semantic edit using rng,
// and returns the mutated copy in canonical order. The input is never
// touched, and the same rng state always yields the same result.
type Degradation func(excerpt model.NoteSequence, rng *rand.Rand, params Params) (model.NoteSequence, error)

// Names lists every degradation in the canonical vector order shared with
// the classifiers.
var Names = model.DegradationNames

// Registry maps each degradation name to its operator, for
// configuration-driven selection.
func Registry() map[string]Degradation {
	return map[string]Degradation{
		"pitch_shift":  PitchShift,
		"time_shift":   TimeShift,
		"onset_shift":  OnsetShift,
		"offset_shift": OffsetShift,
		"remove_note":  RemoveNote,
		"add_note":     AddNote,
	}
}

func pick(name string, excerpt model.NoteSequence, rng *rand.Rand, params Params) (model.NoteSequence, int, error) {
	if err := params.Validate(); err != nil {
		return nil, 0, err
	}
	if len(excerpt) == 0 {
		return nil, 0, fmt.Errorf("%v requires at least one note", name)
	}
	degraded := excerpt.Clone()
	return degraded, rng.Intn(len(degraded)), nil
}

// PitchShift resamples one note's pitch until it differs from the
// original. Onset, duration and track are unchanged.
func PitchShift(excerpt model.NoteSequence, rng *rand.Rand, params Params) (model.NoteSequence, error) {
	degraded, i, err := pick("pitch_shift", excerpt, rng, params)
	if err != nil {
		return nil, err
	}

	original := degraded[i].Pitch
	for degraded[i].Pitch == original {
		degraded[i].Pitch = params.PitchShiftMinPitch +
			rng.Intn(params.PitchShiftMaxPitch-params.PitchShiftMinPitch)
	}

	degraded.Sort()
	return degraded, nil
}

// TimeShift moves one note's onset and offset together, keeping its
// duration. The new onset is sampled uniformly from [0, span-dur], where
// span is the excerpt's last offset, and resampled until it has moved by
// at least TimeShiftMinShift.
func TimeShift(excerpt model.NoteSequence, rng *rand.Rand, params Params) (model.NoteSequence, error) {
	degraded, i, err := pick("time_shift", excerpt, rng, params)
	if err != nil {
		return nil, err
	}

	n := degraded[i]
	limit := degraded.LastOffset() - n.Dur
	minShift := params.TimeShiftMinShift
	if n.Onset < minShift && limit-n.Onset < minShift {
		return nil, fmt.Errorf("time_shift: no onset in [0, %v] is %vms away from %v",
			limit, minShift, n.Onset)
	}

	newOnset := n.Onset
	for util.Abs(newOnset-n.Onset) < minShift {
		newOnset = rng.Intn(limit + 1)
	}
	degraded[i].Onset = newOnset

	degraded.Sort()
	return degraded, nil
}

// OnsetShift moves one note's onset while holding its offset fixed, so the
// duration changes with it. The new onset is sampled uniformly from
// [0, offset-1] and resampled until it has moved by at least
// OnsetShiftMinShift.
func OnsetShift(excerpt model.NoteSequence, rng *rand.Rand, params Params) (model.NoteSequence, error) {
	degraded, i, err := pick("onset_shift", excerpt, rng, params)
	if err != nil {
		return nil, err
	}

	n := degraded[i]
	offset := n.Offset()
	limit := offset - 1
	minShift := params.OnsetShiftMinShift
	if n.Onset < minShift && limit-n.Onset < minShift {
		return nil, fmt.Errorf("onset_shift: no onset in [0, %v] is %vms away from %v",
			limit, minShift, n.Onset)
	}

	newOnset := n.Onset
	for util.Abs(newOnset-n.Onset) < minShift {
		newOnset = rng.Intn(limit + 1)
	}
	degraded[i].Onset = newOnset
	degraded[i].Dur = offset - newOnset

	degraded.Sort()
	return degraded, nil
}

// OffsetShift resamples one note's duration while holding its onset fixed.
// The new duration is sampled uniformly from [1, span-onset] and resampled
// until it has changed by at least OffsetShiftMinShift.
func OffsetShift(excerpt model.NoteSequence, rng *rand.Rand, params Params) (model.NoteSequence, error) {
	degraded, i, err := pick("offset_shift", excerpt, rng, params)
	if err != nil {
		return nil, err
	}

	n := degraded[i]
	maxDur := degraded.LastOffset() - n.Onset
	minShift := params.OffsetShiftMinShift
	if n.Dur-1 < minShift && maxDur-n.Dur < minShift {
		return nil, fmt.Errorf("offset_shift: no duration in [1, %v] is %vms away from %v",
			maxDur, minShift, n.Dur)
	}

	newDur := n.Dur
	for util.Abs(newDur-n.Dur) < minShift {
		newDur = 1 + rng.Intn(maxDur)
	}
	degraded[i].Dur = newDur

	degraded.Sort()
	return degraded, nil
}

// RemoveNote removes one uniformly sampled note. Removal is by the sampled
// note itself, never a fixed position.
func RemoveNote(excerpt model.NoteSequence, rng *rand.Rand, params Params) (model.NoteSequence, error) {
	degraded, i, err := pick("remove_note", excerpt, rng, params)
	if err != nil {
		return nil, err
	}

	degraded = append(degraded[:i], degraded[i+1:]...)
	return degraded, nil
}

// AddNote inserts a synthesized note: onset uniform in [0, span), duration
// uniform in [1, span-onset], pitch uniform in [MinPitch, MaxPitch), track
// drawn from the tracks already present.
func AddNote(excerpt model.NoteSequence, rng *rand.Rand, params Params) (model.NoteSequence, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(excerpt) == 0 {
		return nil, fmt.Errorf("add_note requires at least one note to define a time span")
	}
	degraded := excerpt.Clone()

	span := degraded.LastOffset()
	tracks := make(map[int]bool)
	for _, n := range degraded {
		tracks[n.Track] = true
	}
	trackList := util.GetKeys(tracks)
	// map key order is random; determinism under a fixed seed needs a sort
	sort.Ints(trackList)

	onset := rng.Intn(span)
	note := model.Note{
		Onset: onset,
		Track: trackList[rng.Intn(len(trackList))],
		Pitch: params.AddNoteMinPitch + rng.Intn(params.AddNoteMaxPitch-params.AddNoteMinPitch),
		Dur:   1 + rng.Intn(span-onset),
	}
	degraded = append(degraded, note)

	degraded.Sort()
	return degraded, nil
}
