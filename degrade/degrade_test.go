package degrade

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yagyapandeya/midi-degradation-toolkit/model"
	"github.com/yagyapandeya/midi-degradation-toolkit/util"
)

func testExcerpt() model.NoteSequence {
	return model.NoteSequence{
		{Onset: 0, Track: 0, Pitch: 60, Dur: 500},
		{Onset: 500, Track: 0, Pitch: 64, Dur: 250},
		{Onset: 500, Track: 1, Pitch: 48, Dur: 1000},
		{Onset: 1000, Track: 0, Pitch: 67, Dur: 500},
	}
}

func newRng(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestRegistryMatchesCanonicalOrder(t *testing.T) {
	registry := Registry()

	assert := assert.New(t)
	assert.Equal(len(Names), len(registry))
	assert.Equal([]string{
		"pitch_shift", "time_shift", "onset_shift",
		"offset_shift", "remove_note", "add_note",
	}, Names)
	for i, name := range Names {
		assert.Contains(registry, name)
		idx, ok := model.DegradationIndex(name)
		assert.True(ok)
		assert.Equal(i, idx)
	}
}

func TestParamsValidateRejectsSingleValuePitchRange(t *testing.T) {
	params := DefaultParams()
	params.PitchShiftMinPitch = 60
	params.PitchShiftMaxPitch = 61

	assert.Error(t, params.Validate())
}

func TestOperatorsFailOnEmptyExcerpt(t *testing.T) {
	for name, op := range Registry() {
		t.Run(name, func(t *testing.T) {
			_, err := op(model.NoteSequence{}, newRng(1), DefaultParams())
			assert.Error(t, err)
		})
	}
}

func TestOperatorsNeverMutateInput(t *testing.T) {
	for name, op := range Registry() {
		t.Run(name, func(t *testing.T) {
			original := testExcerpt()
			snapshot := original.Clone()

			_, err := op(original, newRng(42), DefaultParams())

			assert := assert.New(t)
			assert.NoError(err)
			assert.Equal(snapshot, original)
		})
	}
}

func TestOperatorsAreDeterministicPerSeed(t *testing.T) {
	for name, op := range Registry() {
		t.Run(name, func(t *testing.T) {
			first, err1 := op(testExcerpt(), newRng(7), DefaultParams())
			second, err2 := op(testExcerpt(), newRng(7), DefaultParams())

			assert := assert.New(t)
			assert.NoError(err1)
			assert.NoError(err2)
			assert.Equal(first, second)
		})
	}
}

func TestPitchShiftChangesExactlyOnePitch(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		t.Run(fmt.Sprintf("seed %v", seed), func(t *testing.T) {
			original := testExcerpt()
			degraded, err := PitchShift(original, newRng(seed), DefaultParams())

			assert := assert.New(t)
			assert.NoError(err)
			assert.Equal(len(original), len(degraded))

			changed := 0
			for _, n := range degraded {
				if containsNote(original, n) {
					continue
				}
				changed++
				assert.GreaterOrEqual(n.Pitch, 0)
				assert.Less(n.Pitch, 88)
				// the changed note keeps its timing and track
				match := false
				for _, o := range original {
					if o.Onset == n.Onset && o.Track == n.Track && o.Dur == n.Dur && o.Pitch != n.Pitch {
						match = true
					}
				}
				assert.True(match)
			}
			assert.Equal(1, changed)
		})
	}
}

func TestRemoveNoteRemovesTheSampledNote(t *testing.T) {
	// sweep seeds and check every note can be the one removed; a fixed
	// positional removal would only ever drop the first note
	removed := make(map[model.Note]bool)
	for seed := int64(0); seed < 100; seed++ {
		original := testExcerpt()
		degraded, err := RemoveNote(original, newRng(seed), DefaultParams())

		assert := assert.New(t)
		assert.NoError(err)
		assert.Equal(len(original)-1, len(degraded))

		var missing []model.Note
		for _, n := range original {
			if !containsNote(degraded, n) {
				missing = append(missing, n)
			}
		}
		assert.Equal(1, len(missing))
		removed[missing[0]] = true

		for _, n := range degraded {
			assert.True(containsNote(original, n))
		}
	}
	assert.Equal(t, len(testExcerpt()), len(removed))
}

func TestTimeShiftPreservesDuration(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		original := testExcerpt()
		degraded, err := TimeShift(original, newRng(seed), DefaultParams())

		assert := assert.New(t)
		assert.NoError(err)
		assert.Equal(len(original), len(degraded))

		shifted := diffNotes(original, degraded)
		if assert.Equal(1, len(shifted)) {
			before, after := shifted[0][0], shifted[0][1]
			assert.Equal(before.Dur, after.Dur)
			assert.Equal(before.Pitch, after.Pitch)
			assert.Equal(before.Track, after.Track)
			assert.GreaterOrEqual(util.Abs(after.Onset-before.Onset), 40)
			assert.LessOrEqual(after.Offset(), original.LastOffset())
		}
	}
}

func TestOnsetShiftKeepsOffsetFixed(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		original := testExcerpt()
		degraded, err := OnsetShift(original, newRng(seed), DefaultParams())

		assert := assert.New(t)
		assert.NoError(err)

		shifted := diffNotes(original, degraded)
		if assert.Equal(1, len(shifted)) {
			before, after := shifted[0][0], shifted[0][1]
			assert.Equal(before.Offset(), after.Offset())
			assert.NotEqual(before.Onset, after.Onset)
			assert.GreaterOrEqual(util.Abs(after.Onset-before.Onset), 40)
			assert.Greater(after.Dur, 0)
		}
	}
}

func TestOffsetShiftKeepsOnsetFixed(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		original := testExcerpt()
		degraded, err := OffsetShift(original, newRng(seed), DefaultParams())

		assert := assert.New(t)
		assert.NoError(err)

		shifted := diffNotes(original, degraded)
		if assert.Equal(1, len(shifted)) {
			before, after := shifted[0][0], shifted[0][1]
			assert.Equal(before.Onset, after.Onset)
			assert.GreaterOrEqual(util.Abs(after.Dur-before.Dur), 40)
			assert.Greater(after.Dur, 0)
			assert.LessOrEqual(after.Offset(), original.LastOffset())
		}
	}
}

func TestAddNoteAddsOneNoteWithinSpan(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		original := testExcerpt()
		degraded, err := AddNote(original, newRng(seed), DefaultParams())

		assert := assert.New(t)
		assert.NoError(err)
		assert.Equal(len(original)+1, len(degraded))

		var added []model.Note
		for _, n := range degraded {
			if !containsNote(original, n) {
				added = append(added, n)
			}
		}
		if assert.Equal(1, len(added)) {
			n := added[0]
			assert.GreaterOrEqual(n.Onset, 0)
			assert.Less(n.Onset, original.LastOffset())
			assert.Greater(n.Dur, 0)
			assert.LessOrEqual(n.Offset(), original.LastOffset())
			assert.GreaterOrEqual(n.Pitch, 0)
			assert.Less(n.Pitch, 88)
			assert.Contains([]int{0, 1}, n.Track)
		}
	}
}

func TestShiftOperatorsErrorWhenNoRoomToMove(t *testing.T) {
	// a lone note filling its whole span cannot move or resize by 40ms
	excerpt := model.NoteSequence{{Onset: 0, Track: 0, Pitch: 60, Dur: 30}}

	assert := assert.New(t)
	_, err := TimeShift(excerpt, newRng(1), DefaultParams())
	assert.Error(err)
	_, err = OnsetShift(excerpt, newRng(1), DefaultParams())
	assert.Error(err)
	_, err = OffsetShift(excerpt, newRng(1), DefaultParams())
	assert.Error(err)
}

func containsNote(seq model.NoteSequence, note model.Note) bool {
	for _, n := range seq {
		if n == note {
			return true
		}
	}
	return false
}

// diffNotes pairs up the one note that changed between two equal-length
// sequences, as [before, after].
func diffNotes(original, degraded model.NoteSequence) [][2]model.Note {
	var missing, added []model.Note
	for _, n := range original {
		if !containsNote(degraded, n) {
			missing = append(missing, n)
		}
	}
	for _, n := range degraded {
		if !containsNote(original, n) {
			added = append(added, n)
		}
	}

	var res [][2]model.Note
	if len(missing) == 1 && len(added) == 1 {
		res = append(res, [2]model.Note{missing[0], added[0]})
	}
	return res
}
