package chord

import "regexp"

// Semitones in an octave.
const Octave = 12

// semitones maps every supported spelling, enharmonics included, to its pitch class.
var semitones = map[string]int{
	"C": 0, "C#": 1, "Db": 1,
	"D": 2, "D#": 3, "Eb": 3,
	"E": 4, "Fb": 4, "E#": 5,
	"F": 5, "F#": 6, "Gb": 6,
	"G": 7, "G#": 8, "Ab": 8,
	"A": 9, "A#": 10, "Bb": 10,
	"B": 11, "Cb": 11, "B#": 0,
}

// notes is the canonical spelling for each pitch class. Sharps are preferred.
var notes = [Octave]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var noteRe = regexp.MustCompile(`[A-G][#b]?`)

// Semitone returns the pitch class (0-11) of a note spelling such as "Eb" or "B#".
func Semitone(note string) (int, bool) {
	s, ok := semitones[note]
	return s, ok
}

// Note returns the sharp spelling of a semitone. Any integer is accepted and
// reduced modulo 12.
func Note(semitone int) string {
	return notes[mod(semitone)]
}

// Transpose shifts every note token in chord by delta semitones.
// Negative deltas transpose down. Unrecognized text is returned as is.
func Transpose(chord string, delta int) string {
	if chord == "" {
		return chord
	}
	return noteRe.ReplaceAllStringFunc(chord, func(tok string) string {
		s, ok := semitones[tok]
		if !ok {
			return tok
		}
		return notes[mod(s+delta)]
	})
}

func mod(n int) int {
	return (n%Octave + Octave) % Octave
}
