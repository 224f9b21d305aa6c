package pipeline

import (
	"github.com/matzehuels/chordsheet/pkg/layout"
	"github.com/matzehuels/chordsheet/pkg/song"
)

// Layout transposes s by opts.Transpose, wraps its lines to opts.MaxWidth
// and arranges the sections into opts.Columns columns. s is not modified.
func Layout(s *song.Song, opts Options) layout.Sheet {
	opts.SetLayoutDefaults()
	work := s
	if opts.Transpose != 0 {
		work = s.Transpose(opts.Transpose)
	}
	return layout.Render(layout.WrapSong(work, opts.MaxWidth), opts.Columns)
}
