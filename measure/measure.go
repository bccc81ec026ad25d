// Package measure maps observed differences between ground-truth and
// transcribed note data back to the degradation vocabulary.
package measure

import (
	"fmt"
	"os"

	"github.com/yagyapandeya/midi-degradation-toolkit/excerpt"
	"github.com/yagyapandeya/midi-degradation-toolkit/model"
	"github.com/yagyapandeya/midi-degradation-toolkit/util"
)

// NoteDegradations determines which degradations best explain the
// difference between one ground-truth note and its transcribed
// counterpart. minShift is the smallest timing difference, in ms, that
// counts as a shift.
//
// Pitch is checked first and independently of timing. When both the
// duration and onset differences fall under minShift no timing degradation
// is marked; when only the onset moved it is a time_shift; otherwise
// onset_shift and offset_shift are each marked on their own delta, and may
// both be set.
func NoteDegradations(gt, trans model.Note, minShift int) model.DegradationVector {
	var degs model.DegradationVector

	if gt.Pitch != trans.Pitch {
		degs[model.PitchShift] = 1
	}

	if util.Abs(gt.Dur-trans.Dur) < minShift {
		if util.Abs(gt.Onset-trans.Onset) < minShift {
			return degs
		}
		degs[model.TimeShift] = 1
		return degs
	}

	if util.Abs(gt.Onset-trans.Onset) >= minShift {
		degs[model.OnsetShift] = 1
	}
	if util.Abs(gt.Offset()-trans.Offset()) >= minShift {
		degs[model.OffsetShift] = 1
	}
	return degs
}

// ExcerptDegradations estimates the count of each degradation between a
// ground-truth excerpt and its transcription. Only the two degenerate
// cases are defined: an empty ground truth makes every transcribed note an
// add_note, and an empty transcription makes every ground-truth note a
// remove_note. Aligning two differing non-empty excerpts needs a
// note-correspondence strategy that is not defined yet; such pairs
// currently contribute no counts.
func ExcerptDegradations(gt, trans model.NoteSequence) model.DegradationVector {
	var degs model.DegradationVector

	if len(gt) == 0 {
		degs[model.AddNote] = float64(len(trans))
		return degs
	}

	if len(trans) == 0 {
		degs[model.RemoveNote] = float64(len(gt))
		return degs
	}

	return degs
}

// Proportions drives windowing and classification across a whole piece.
// Non-overlapping windows of length ms are taken from time 0 to the latest
// offset across both sequences; windows where both excerpts hold fewer
// than minNotes notes are skipped with a diagnostic. The returned vector
// divides the accumulated counts by the number of non-clean windows (all
// zeros when there were none), and clean is the fraction of evaluated
// windows with no degradations at all (0 when none were evaluated).
func Proportions(gt, trans model.NoteSequence, length, minNotes int) (model.DegradationVector, float64) {
	var degCounts model.DegradationVector
	var numExcerpts, cleanCount int

	endTime := gt.LastOffset()
	if t := trans.LastOffset(); t > endTime {
		endTime = t
	}

	for start := 0; start < endTime; start += length {
		end := util.Min(start+length, endTime)
		gtExcerpt := excerpt.Window(gt, start, end)
		transExcerpt := excerpt.Window(trans, start, end)

		if len(gtExcerpt) < minNotes && len(transExcerpt) < minNotes {
			fmt.Fprintf(os.Stderr,
				"Skipping excerpt [%v, %v): fewer than %v notes on both sides\n",
				start, end, minNotes)
			continue
		}

		numExcerpts++
		degs := ExcerptDegradations(gtExcerpt, transExcerpt)
		degCounts.Add(degs)
		if degs.Sum() == 0 {
			cleanCount++
		}
	}

	var proportions model.DegradationVector
	if denom := numExcerpts - cleanCount; denom > 0 {
		for i := range degCounts {
			proportions[i] = degCounts[i] / float64(denom)
		}
	}

	var clean float64
	if numExcerpts > 0 {
		clean = float64(cleanCount) / float64(numExcerpts)
	}
	return proportions, clean
}
