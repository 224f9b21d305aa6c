package adapter

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want LineKind
	}{
		{"", LineEmpty},
		{"   \t", LineEmpty},
		{"[Chorus]", LineHeader},
		{"Verse 2", LineHeader},
		{"Pre-Chorus", LineHeader},
		{"[Instrumental break, repeat twice after the bridge]", LineHeader},
		{"I will turn my eyes upon you", LineLyric},
		{"G  D/F#  Em7  C", LineChords},
		{"N.C.   G", LineChords},
		{"Am | F | C | G", LineChords},
		{"Em7  G  Dsus4  A7sus4", LineChords},
		{"Today is gonna be the day", LineLyric},
	}

	for _, tt := range tests {
		if got := Classify(tt.line); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestIsSectionHeader(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Chorus", true},
		{"  verse 1 ", true},
		{"[Outro]", true},
		{"Tag x2", true},
		{"Turnaround", true},
		{"Bless the Lord oh my soul", false},
		{"Choruses", false},
	}

	for _, tt := range tests {
		if got := IsSectionHeader(tt.line); got != tt.want {
			t.Errorf("IsSectionHeader(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
