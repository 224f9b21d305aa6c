package chord

import "testing"

func TestReduce(t *testing.T) {
	tests := []struct {
		chord string
		want  string
	}{
		{"C", "C"},
		{"Am7", "Am"},
		{"Gsus4", "G"},
		{"Bdim7", "Bdim"},
		{"Caug", "Caug"},
		{"F#m7b5", "F#m"},
		{"Cmaj7", "C"},
		{"Dmin", "Dm"},
		{"D/F#", "D"},
		{"N.C.", "N.C."},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Reduce(tt.chord); got != tt.want {
			t.Errorf("Reduce(%q) = %q, want %q", tt.chord, got, tt.want)
		}
	}
}

func TestReduced(t *testing.T) {
	got := Reduced(map[string]int{"Am": 2, "Am7": 3, "G": 1, "Gsus4": 1})
	if got["Am"] != 5 {
		t.Errorf("Reduced[Am] = %d, want 5", got["Am"])
	}
	if got["G"] != 2 {
		t.Errorf("Reduced[G] = %d, want 2", got["G"])
	}
	if len(got) != 2 {
		t.Errorf("len(Reduced) = %d, want 2", len(got))
	}
}

func TestDetectKey(t *testing.T) {
	tests := []struct {
		name string
		occ  map[string]int
		want string
	}{
		{
			name: "C major",
			occ:  map[string]int{"C": 5, "F": 3, "G": 3, "Am": 2},
			want: "C",
		},
		{
			name: "D major",
			occ:  map[string]int{"D": 5, "G": 3, "A": 3, "Bm": 2},
			want: "D",
		},
		{
			name: "flat spellings normalize to sharps",
			occ:  map[string]int{"Eb": 4, "Ab": 2, "Bb": 2, "Cm": 1},
			want: "D#",
		},
		{
			name: "extensions reduced before scoring",
			occ:  map[string]int{"Gmaj7": 4, "Cadd9": 2, "D7": 2, "Em7": 2},
			want: "G",
		},
		{
			name: "maj7 counts as major",
			occ:  map[string]int{"Cmaj7": 4, "Fmaj7": 3, "G": 2, "Dm7": 1},
			want: "C",
		},
		{
			name: "no overlap falls back",
			occ:  map[string]int{"N.C.": 3, "x": 1},
			want: DefaultKey,
		},
		{
			name: "empty histogram falls back",
			occ:  map[string]int{},
			want: DefaultKey,
		},
		{
			name: "nil histogram falls back",
			occ:  nil,
			want: DefaultKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectKey(tt.occ); got != tt.want {
				t.Errorf("DetectKey(%v) = %q, want %q", tt.occ, got, tt.want)
			}
		})
	}
}

func TestDetectKeyFollowsTransposition(t *testing.T) {
	base := map[string]int{"C": 5, "F": 3, "G": 3, "Am": 2, "Em": 1}

	for d := range Octave {
		shifted := make(map[string]int, len(base))
		for c, n := range base {
			shifted[Transpose(c, d)] = n
		}
		if got, want := DetectKey(shifted), Note(d); got != want {
			t.Errorf("shift %d: DetectKey = %q, want %q", d, got, want)
		}
	}
}

func TestScore(t *testing.T) {
	reduced := map[string]int{"C": 2, "Dm": 1, "E": 1}

	if got, want := Score(reduced, 0), 2.9; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("Score(shift 0) = %v, want %v", got, want)
	}
	if got := Score(map[string]int{"C#": 4}, 0); got != 0 {
		t.Errorf("Score(C#, shift 0) = %v, want 0", got)
	}
}
