package layout_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/chordsheet/pkg/layout"
	"github.com/matzehuels/chordsheet/pkg/song"
)

func ExampleAllocate() {
	fmt.Println(layout.Allocate([]int{10, 10, 10, 10}, 2))
	fmt.Println(layout.Allocate([]int{50, 1, 1, 1}, 3))
	// Output:
	// [[0 1] [2 3]]
	// [[0] [1 2 3]]
}

func ExampleSplitLine() {
	l := song.NewLine(
		song.Pair{Chord: "Asus4 ", Lyric: "abcd abcd "},
		song.Pair{Chord: "A ", Lyric: "abcdefg"},
	)
	for _, part := range layout.SplitLine(l, 10) {
		fmt.Printf("%q\n", part.Pairs)
	}
	// Output:
	// [{"Asus4 " "abcd abcd"}]
	// [{"" " "} {"A " "abcdefg"}]
}

func ExampleRender() {
	s := &song.Song{
		Title:  "Grace",
		Artist: "Newton",
		Sections: []song.Section{
			{Header: "Verse 1", Lines: []song.Line{
				song.NewLine(song.Pair{Chord: "G ", Lyric: "Amazing "}, song.Pair{Chord: "C ", Lyric: "grace"}),
				song.NewLine(song.Pair{Chord: "D", Lyric: "how sweet"}),
			}},
			{Header: "Chorus", Lines: []song.Line{
				song.NewLine(song.Pair{Chord: "Em ", Lyric: "my chains"}),
			}},
		},
	}
	sheet := layout.Render(s, 2)
	for _, l := range sheet.Lines {
		fmt.Println(strings.TrimRight(layout.StripMarkup(l), " "))
	}
	fmt.Println(sheet.Width, sheet.Height)
	// Output:
	// Grace - Newton
	// Key: G
	// _______________________
	// Verse 1      |Chorus
	// G       C    |Em
	// Amazing grace|my chains
	// D            |_________
	// how sweet    |
	// _____________|
	//
	// 23 10
}
