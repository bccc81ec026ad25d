package model

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoData signals that a parsed file or request contained no notes.
// Callers are expected to treat it as "skip and warn", not as a crash.
var ErrNoData = errors.New("no note data")

// Note is one row of the tabular note representation. Times are integer
// milliseconds, pitch is a MIDI pitch number.
type Note struct {
	Onset int `json:"onset"`
	Track int `json:"track"`
	Pitch int `json:"pitch"`
	Dur   int `json:"dur"`
}

// Offset is the time the note ends.
func (n Note) Offset() int {
	return n.Onset + n.Dur
}

// NoteSequence is an ordered collection of notes. The canonical order is
// (onset, track, pitch, dur) ascending. Playback does not care about the
// order, but deterministic output and reproducible tests do, so every
// sequence handed to a caller must be sorted.
type NoteSequence []Note

// Sort puts the sequence into the canonical order in place.
func (s NoteSequence) Sort() {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Onset != s[j].Onset {
			return s[i].Onset < s[j].Onset
		}
		if s[i].Track != s[j].Track {
			return s[i].Track < s[j].Track
		}
		if s[i].Pitch != s[j].Pitch {
			return s[i].Pitch < s[j].Pitch
		}
		return s[i].Dur < s[j].Dur
	})
}

// Clone returns an independent copy. Degradation operators work on clones
// so the same original excerpt can be degraded any number of times.
func (s NoteSequence) Clone() NoteSequence {
	res := make(NoteSequence, len(s))
	copy(res, s)
	return res
}

// LastOffset returns the time the last-sounding note ends, or 0 for an
// empty sequence.
func (s NoteSequence) LastOffset() int {
	var res int
	for _, n := range s {
		if n.Offset() > res {
			res = n.Offset()
		}
	}
	return res
}

// Validate checks the sequence invariants: every duration positive, every
// onset non-negative.
func (s NoteSequence) Validate() error {
	for i, n := range s {
		if n.Dur <= 0 {
			return fmt.Errorf("note %v has non-positive duration %v", i, n.Dur)
		}
		if n.Onset < 0 {
			return fmt.Errorf("note %v has negative onset %v", i, n.Onset)
		}
	}
	return nil
}
