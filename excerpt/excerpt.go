// Package excerpt slices note sequences into bounded-time windows.
package excerpt

import (
	"github.com/yagyapandeya/midi-degradation-toolkit/model"
)

// NoEnd removes the upper bound from Window.
const NoEnd = -1

// Window returns the notes of seq lying within [start, end), as a new
// sequence; seq itself is never modified. A note which onsets before start
// but sounds past it is truncated: its leading portion is discarded, not
// moved. A note which sounds past end is shortened to finish at end. Notes
// entirely before start, or onsetting at or after end, are dropped. Pass
// NoEnd to enforce no upper bound.
func Window(seq model.NoteSequence, start, end int) model.NoteSequence {
	var res model.NoteSequence
	for _, n := range seq {
		if n.Onset < start && n.Offset() > start {
			n.Dur -= start - n.Onset
			n.Onset = start
		}
		if end != NoEnd && n.Onset < end && n.Offset() > end {
			n.Dur = end - n.Onset
		}
		if n.Onset < start {
			continue
		}
		if end != NoEnd && n.Onset >= end {
			continue
		}
		res = append(res, n)
	}
	res.Sort()
	return res
}

// Shift returns a copy of seq with every onset moved by delta ms.
func Shift(seq model.NoteSequence, delta int) model.NoteSequence {
	res := seq.Clone()
	for i := range res {
		res[i].Onset += delta
	}
	res.Sort()
	return res
}
