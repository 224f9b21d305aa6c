package render

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/matzehuels/chordsheet/pkg/errors"
)

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

// Hex returns the colour as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHexColor parses "#rgb" or "#rrggbb", with or without the leading '#'.
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, errs.New(errs.ErrCodeInvalidConfig, "invalid colour %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "invalid colour %q", s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Theme colours a rendered sheet.
type Theme struct {
	Background Color
	Text       Color
	Chord      Color
}

// DefaultTheme is black text with red chords on white.
var DefaultTheme = Theme{
	Background: Color{255, 255, 255},
	Text:       Color{0, 0, 0},
	Chord:      Color{255, 0, 0},
}

// ParseTheme builds a theme from three hex colours.
func ParseTheme(background, text, chord string) (Theme, error) {
	var (
		t   Theme
		err error
	)
	if t.Background, err = ParseHexColor(background); err != nil {
		return Theme{}, fmt.Errorf("background: %w", err)
	}
	if t.Text, err = ParseHexColor(text); err != nil {
		return Theme{}, fmt.Errorf("text: %w", err)
	}
	if t.Chord, err = ParseHexColor(chord); err != nil {
		return Theme{}, fmt.Errorf("chord: %w", err)
	}
	return t, nil
}
