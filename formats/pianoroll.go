package formats

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yagyapandeya/midi-degradation-toolkit/model"
)

// PianoRoll is a time-by-pitch activation matrix: Notes[t][p] is nonzero
// while pitch MinPitch+p sounds during frame t, and Onsets[t][p] marks the
// frames where a note begins. Each frame covers TimeIncrement ms.
type PianoRoll struct {
	Notes         [][]int
	Onsets        [][]int
	MinPitch      int
	TimeIncrement int
}

// ToNotes rebuilds note rows from the roll, all on track 0. A note runs
// from an onset frame until its pitch goes silent or another onset begins.
func (pr PianoRoll) ToNotes() model.NoteSequence {
	var seq model.NoteSequence
	if len(pr.Notes) == 0 {
		return seq
	}

	numPitches := len(pr.Notes[0])
	for p := 0; p < numPitches; p++ {
		start := -1
		for t := 0; t <= len(pr.Notes); t++ {
			active := t < len(pr.Notes) && pr.Notes[t][p] != 0
			onset := t < len(pr.Onsets) && pr.Onsets[t][p] != 0

			// an onset inside a sounding run splits it into two notes
			if start >= 0 && (!active || onset) {
				seq = append(seq, model.Note{
					Onset: start * pr.TimeIncrement,
					Track: 0,
					Pitch: pr.MinPitch + p,
					Dur:   (t - start) * pr.TimeIncrement,
				})
				start = -1
			}
			if start < 0 && active {
				start = t
			}
		}
	}

	seq.Sort()
	return seq
}

// NotesToPianoRoll rasterizes a sequence onto a roll covering pitches
// [minPitch, maxPitch] inclusive; notes outside the range are dropped.
func NotesToPianoRoll(seq model.NoteSequence, minPitch, maxPitch, timeIncrement int) PianoRoll {
	numPitches := maxPitch - minPitch + 1
	numFrames := (seq.LastOffset() + timeIncrement - 1) / timeIncrement

	pr := PianoRoll{MinPitch: minPitch, TimeIncrement: timeIncrement}
	for t := 0; t < numFrames; t++ {
		pr.Notes = append(pr.Notes, make([]int, numPitches))
		pr.Onsets = append(pr.Onsets, make([]int, numPitches))
	}

	for _, n := range seq {
		if n.Pitch < minPitch || n.Pitch > maxPitch {
			continue
		}
		p := n.Pitch - minPitch
		first := n.Onset / timeIncrement
		last := (n.Offset() - 1) / timeIncrement
		pr.Onsets[first][p] = 1
		for t := first; t <= last && t < numFrames; t++ {
			pr.Notes[t][p] = 1
		}
	}
	return pr
}

// deriveOnsets marks an onset wherever a pitch goes from silent to
// sounding between consecutive frames.
func deriveOnsets(notes [][]int) [][]int {
	onsets := make([][]int, len(notes))
	for t := range notes {
		onsets[t] = make([]int, len(notes[t]))
		for p, v := range notes[t] {
			if v != 0 && (t == 0 || notes[t-1][p] == 0) {
				onsets[t][p] = 1
			}
		}
	}
	return onsets
}

// ReadPianoRollCSV loads a piano roll stored as a csv matrix of 0/1 cells,
// one row per frame. The row width must equal the pitch range
// [minPitch, maxPitch] inclusive, or twice it when onset columns follow
// the note columns; anything else is a configuration error. Rolls without
// onset columns get their onsets derived from frame transitions.
func ReadPianoRollCSV(path string, minPitch, maxPitch, timeIncrement int) (PianoRoll, error) {
	var pr PianoRoll

	f, err := os.Open(path)
	if err != nil {
		return pr, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	var matrix [][]int
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return pr, fmt.Errorf("parsing %v: %w", path, err)
		}
		row := make([]int, len(record))
		for i, field := range record {
			row[i], err = strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return pr, fmt.Errorf("parsing %v: bad cell %q: %w", path, field, err)
			}
		}
		matrix = append(matrix, row)
	}
	if len(matrix) == 0 {
		return pr, model.ErrNoData
	}

	numPitches := maxPitch - minPitch + 1
	width := len(matrix[0])
	pr.MinPitch = minPitch
	pr.TimeIncrement = timeIncrement

	switch width {
	case numPitches:
		pr.Notes = matrix
		pr.Onsets = deriveOnsets(matrix)
	case 2 * numPitches:
		for _, row := range matrix {
			pr.Notes = append(pr.Notes, row[:numPitches])
			pr.Onsets = append(pr.Onsets, row[numPitches:])
		}
	default:
		return pr, fmt.Errorf("piano roll width %v must be 1 or 2 times the pitch range [%v - %v] = %v",
			width, minPitch, maxPitch, numPitches)
	}
	return pr, nil
}
