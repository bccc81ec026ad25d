package midi

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yagyapandeya/midi-degradation-toolkit/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestNoteSequenceRoundTrip(t *testing.T) {
	seq := model.NoteSequence{
		{Onset: 0, Track: 0, Pitch: 60, Dur: 500},
		{Onset: 500, Track: 0, Pitch: 64, Dur: 500},
		{Onset: 500, Track: 1, Pitch: 48, Dur: 1000},
	}

	var buf bytes.Buffer
	_, err := FromNoteSequence(seq).WriteTo(&buf)
	assert.NoError(t, err)

	parsed, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)

	back, err := ToNoteSequence(parsed)
	assert.NoError(t, err)

	assert := assert.New(t)
	if !assert.Equal(len(seq), len(back)) {
		return
	}
	for i, n := range back {
		assert.Equal(seq[i].Pitch, n.Pitch)
		// FromNoteSequence puts the tempo map on track 0, so note tracks
		// come back shifted up by one
		assert.Equal(seq[i].Track+1, n.Track)
		assert.InDelta(float64(seq[i].Onset), float64(n.Onset), 1)
		assert.InDelta(float64(seq[i].Dur), float64(n.Dur), 2)
	}
}

func TestToNoteSequenceEmptyFileIsNoData(t *testing.T) {
	var empty smf.SMF
	empty.TimeFormat = smf.MetricTicks(960)
	var track smf.Track
	track.Close(0)
	empty.Tracks = append(empty.Tracks, track)

	var buf bytes.Buffer
	empty.WriteTo(&buf)
	parsed, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)

	_, err = ToNoteSequence(parsed)
	assert.ErrorIs(t, err, model.ErrNoData)
}

func TestRepeatedPitchesDoNotMerge(t *testing.T) {
	// back-to-back notes on the same pitch must come back as two notes,
	// relying on the off-before-on ordering at equal ticks
	seq := model.NoteSequence{
		{Onset: 0, Track: 0, Pitch: 60, Dur: 500},
		{Onset: 500, Track: 0, Pitch: 60, Dur: 500},
	}

	var buf bytes.Buffer
	_, err := FromNoteSequence(seq).WriteTo(&buf)
	assert.NoError(t, err)

	parsed, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)

	back, err := ToNoteSequence(parsed)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(back))
}
