// Package formats converts between the tabular note representation and
// its on-disk encodings.
package formats

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yagyapandeya/midi-degradation-toolkit/midi"
	"github.com/yagyapandeya/midi-degradation-toolkit/model"
)

// ReadCSV parses a headerless csv of onset,track,pitch,dur rows. An empty
// file yields model.ErrNoData.
func ReadCSV(path string) (model.NoteSequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 4

	var seq model.NoteSequence
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing %v: %w", path, err)
		}
		var fields [4]int
		for i, field := range record {
			fields[i], err = strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("parsing %v: bad field %q: %w", path, field, err)
			}
		}
		seq = append(seq, model.Note{
			Onset: fields[0],
			Track: fields[1],
			Pitch: fields[2],
			Dur:   fields[3],
		})
	}

	if len(seq) == 0 {
		return nil, model.ErrNoData
	}
	seq.Sort()
	if err := seq.Validate(); err != nil {
		return nil, fmt.Errorf("parsing %v: %w", path, err)
	}
	return seq, nil
}

// WriteCSV writes the sequence as headerless onset,track,pitch,dur rows,
// creating any missing parent directories. An empty sequence writes
// nothing and returns model.ErrNoData so callers can warn and move on.
func WriteCSV(seq model.NoteSequence, path string) error {
	if len(seq) == 0 {
		return model.ErrNoData
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, n := range seq {
		record := []string{
			strconv.Itoa(n.Onset),
			strconv.Itoa(n.Track),
			strconv.Itoa(n.Pitch),
			strconv.Itoa(n.Dur),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// LoadFile loads any supported note file by extension. Parse failures and
// empty files come back as recoverable errors (model.ErrNoData for the
// latter); an unsupported extension is a configuration error.
func LoadFile(path string) (model.NoteSequence, error) {
	switch filepath.Ext(path) {
	case ".mid", ".midi":
		return midi.ReadNoteSequence(path)
	case ".csv":
		return ReadCSV(path)
	case ".pkl":
		return nil, fmt.Errorf("extension .pkl is not supported: convert pickled piano rolls " +
			"to csv matrices and load them with ReadPianoRollCSV")
	}
	return nil, fmt.Errorf("extension %v not supported", filepath.Ext(path))
}
