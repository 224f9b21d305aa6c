// Package chord implements the pitch arithmetic behind chord sheets.
//
// # Transposition
//
// [Transpose] shifts every note token in a chord symbol by a number of
// semitones. A note token is a letter A-G optionally followed by '#' or 'b',
// so both halves of a slash chord move together while quality suffixes stay
// untouched:
//
//	chord.Transpose("D/F#", 2)  // "E/G#"
//	chord.Transpose("Bbm7", 1)  // "Bm7"
//
// Output always uses sharp spellings (C, C#, D, ... B). Tokens that are not
// notes pass through unchanged, so Transpose never fails.
//
// # Key Detection
//
// [DetectKey] guesses the major key of a song from a histogram of chord
// symbols. Each chord is reduced to root plus triad quality, then the
// histogram is scored against the diatonic chords of C major under all twelve
// transpositions. The best-scoring shift names the key. When no chord lands on
// the template the result is [DefaultKey].
package chord
