package chord

import (
	"maps"
	"regexp"
	"slices"
)

// DefaultKey is returned by DetectKey when no chord overlaps the diatonic template.
const DefaultKey = "C"

// template weighs the chords native to C major.
var template = map[string]float64{
	"C":    1,
	"Dm":   0.9,
	"Em":   0.9,
	"F":    1,
	"G":    1,
	"Am":   1,
	"Bdim": 0.9,
}

var triadRe = regexp.MustCompile(`^([A-G][b#]?)(maj|min|m|dim|aug)?`)

// Reduce strips a chord down to its root and triad quality ("", "m", "dim"
// or "aug"). Sevenths, suspensions and other extensions are dropped:
//
//	Reduce("Am7")   // "Am"
//	Reduce("Gsus4") // "G"
//	Reduce("Cmaj7") // "C"
//
// A chord that does not start with a note is returned unchanged.
func Reduce(chord string) string {
	m := triadRe.FindStringSubmatch(chord)
	if m == nil {
		return chord
	}
	switch q := m[2]; q {
	case "maj":
		return m[1]
	case "min":
		return m[1] + "m"
	default:
		return m[1] + q
	}
}

// Reduced collapses a chord histogram onto reduced chords, summing the counts
// of chords that reduce to the same form.
func Reduced(occurrences map[string]int) map[string]int {
	out := make(map[string]int, len(occurrences))
	for c, n := range occurrences {
		out[Reduce(c)] += n
	}
	return out
}

// Score rates how well a reduced histogram fits C major after transposing
// every chord up by shift semitones.
func Score(reduced map[string]int, shift int) float64 {
	var score float64
	for _, c := range slices.Sorted(maps.Keys(reduced)) {
		score += template[Transpose(c, shift)] * float64(reduced[c])
	}
	return score
}

// DetectKey returns the most likely major key for a chord histogram.
//
// Every shift 0..11 is scored; a later shift wins only with a strictly higher
// score, so ties go to the lowest shift. The key is C transposed down by the
// winning shift. If every shift scores zero, DetectKey returns DefaultKey.
func DetectKey(occurrences map[string]int) string {
	reduced := Reduced(occurrences)

	best, bestScore := -1, 0.0
	for shift := range Octave {
		if s := Score(reduced, shift); s > bestScore {
			best, bestScore = shift, s
		}
	}
	if best < 0 {
		return DefaultKey
	}
	return Transpose("C", -best)
}

