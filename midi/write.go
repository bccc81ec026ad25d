package midi

import (
	"fmt"
	"os"
	"sort"

	"github.com/yagyapandeya/midi-degradation-toolkit/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Files are written at a fixed 120 BPM, so one quarter note is 500ms.
const ticksPerQuarter = 960
const msPerQuarter = 500
const noteVelocity = 100

func msToTicks(ms int) uint32 {
	return uint32(ms * ticksPerQuarter / msPerQuarter)
}

type timedMessage struct {
	tick    uint32
	isOff   bool
	message smf.Message
}

func buildTrack(notes model.NoteSequence) smf.Track {
	var messages []timedMessage
	for _, n := range notes {
		messages = append(messages, timedMessage{
			tick:    msToTicks(n.Onset),
			message: smf.Message(midi.NoteOn(0, uint8(n.Pitch), noteVelocity)),
		})
		messages = append(messages, timedMessage{
			tick:    msToTicks(n.Offset()),
			isOff:   true,
			message: smf.Message(midi.NoteOff(0, uint8(n.Pitch))),
		})
	}

	// note offs go first at equal ticks so repeated pitches don't merge
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].tick != messages[j].tick {
			return messages[i].tick < messages[j].tick
		}
		return messages[i].isOff && !messages[j].isOff
	})

	var track smf.Track
	var lastTick uint32
	for _, m := range messages {
		track = append(track, smf.Event{Delta: m.tick - lastTick, Message: m.message})
		lastTick = m.tick
	}
	track.Close(0)
	return track
}

// FromNoteSequence builds a fresh SMF1 file from note rows: a tempo track
// followed by one track per distinct track number, in ascending order.
func FromNoteSequence(seq model.NoteSequence) *smf.SMF {
	var res smf.SMF
	res.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var tempo smf.Track
	tempo = append(tempo, smf.Event{Delta: 0, Message: smf.MetaTempo(120)})
	tempo.Close(0)
	res.Tracks = append(res.Tracks, tempo)

	byTrack := make(map[int]model.NoteSequence)
	for _, n := range seq {
		byTrack[n.Track] = append(byTrack[n.Track], n)
	}
	trackNums := make([]int, 0, len(byTrack))
	for num := range byTrack {
		trackNums = append(trackNums, num)
	}
	sort.Ints(trackNums)

	for _, num := range trackNums {
		res.Tracks = append(res.Tracks, buildTrack(byTrack[num]))
	}
	return &res
}

// WriteNoteSequence writes the sequence out as a MIDI file.
func WriteNoteSequence(seq model.NoteSequence, path string) error {
	if len(seq) == 0 {
		return model.ErrNoData
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %v: %w", path, err)
	}
	defer f.Close()

	_, err = FromNoteSequence(seq).WriteTo(f)
	if err != nil {
		return fmt.Errorf("writing midi to %v: %w", path, err)
	}
	return nil
}
