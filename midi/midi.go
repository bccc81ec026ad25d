package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/yagyapandeya/midi-degradation-toolkit/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF
	var err error

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)

	if err != nil {
		errText := fmt.Sprintf("Error reading midi file... %s", err.Error())
		return &blank, errors.New(errText)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))

	if err != nil {
		errText := fmt.Sprintf("Error parsing midi file... %s", err.Error())
		return &blank, errors.New(errText)
	}

	return res, nil
}

// ToNoteSequence flattens an SMF into tabular note rows. Each track index
// becomes the row's track number, times are absolute milliseconds. A file
// with no complete notes yields model.ErrNoData.
func ToNoteSequence(s *smf.SMF) (model.NoteSequence, error) {
	var notes model.NoteSequence

	for trackNum, events := range s.Tracks {
		var absTicks int64
		pressed := make(map[uint8]int64) // pitch -> onset in microseconds
		for _, event := range events {
			absTicks += int64(event.Delta)
			absTime := s.TimeAt(absTicks)
			var channel uint8
			var key uint8
			var velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
				if _, ok := pressed[key]; !ok {
					pressed[key] = absTime
				}
			case event.Message.GetNoteOff(&channel, &key, &velocity),
				event.Message.GetNoteOn(&channel, &key, &velocity):
				onset, ok := pressed[key]
				if !ok {
					continue
				}
				delete(pressed, key)
				// storing millis; micros would overflow nothing here but
				// the whole toolkit speaks ms
				onsetMS := int(onset / 1000)
				durMS := int(absTime/1000) - onsetMS
				if durMS <= 0 {
					continue
				}
				notes = append(notes, model.Note{
					Onset: onsetMS,
					Track: trackNum,
					Pitch: int(key),
					Dur:   durMS,
				})
			}
		}
	}

	if len(notes) == 0 {
		return nil, model.ErrNoData
	}
	notes.Sort()
	return notes, nil
}

// ReadNoteSequence parses a MIDI file straight into note rows.
func ReadNoteSequence(filepath string) (model.NoteSequence, error) {
	parsed, err := ReadMidiFile(filepath)
	if err != nil {
		return nil, err
	}
	return ToNoteSequence(parsed)
}
