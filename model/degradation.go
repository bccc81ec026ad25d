package model

// Indices into a DegradationVector. This single canonical ordering is
// shared between the degradation generator and the classifiers.
const (
	PitchShift = iota
	TimeShift
	OnsetShift
	OffsetShift
	RemoveNote
	AddNote

	NumDegradations
)

// DegradationNames lists the degradation kinds in vector order.
var DegradationNames = []string{
	"pitch_shift",
	"time_shift",
	"onset_shift",
	"offset_shift",
	"remove_note",
	"add_note",
}

// DegradationIndex returns the vector index for a degradation name.
func DegradationIndex(name string) (int, bool) {
	for i, n := range DegradationNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// DegradationVector holds one count (or proportion) per degradation kind,
// indexed by the constants above.
type DegradationVector [NumDegradations]float64

// Add accumulates other into v.
func (v *DegradationVector) Add(other DegradationVector) {
	for i := range v {
		v[i] += other[i]
	}
}

// Sum returns the total across all kinds.
func (v DegradationVector) Sum() float64 {
	var total float64
	for _, c := range v {
		total += c
	}
	return total
}

// ToMap renders the vector as a name → value mapping.
func (v DegradationVector) ToMap() map[string]float64 {
	res := make(map[string]float64, NumDegradations)
	for i, name := range DegradationNames {
		res[name] = v[i]
	}
	return res
}
