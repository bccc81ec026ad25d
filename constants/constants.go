package constants

import (
	"os"
	"path/filepath"
)

func GetCacheDir() string {
	path := os.Getenv("MDTK_CACHE_PATH")
	if path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		panic("Could not determine home directory: " + err.Error())
	}
	return filepath.Join(home, ".mdtk_cache")
}

// Pitch range degradations sample from, as [min, max).
const MinPitchDefault = 0
const MaxPitchDefault = 88

// MinShiftDefault is the smallest timing change, in ms, that counts as a
// shift, both when degrading and when classifying.
const MinShiftDefault = 40

const ExcerptLengthDefault = 5000
const MinNotesDefault = 10

// Piano roll defaults: the usual 88-key range, inclusive, and the frame
// length in ms.
const PianoRollMinPitchDefault = 21
const PianoRollMaxPitchDefault = 108
const PianoRollTimeIncrementDefault = 40

// FileTypes are the note-file extensions the toolkit can load.
var FileTypes = []string{"mid", "csv"}
