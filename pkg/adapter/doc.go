// Package adapter turns chord-chart web pages into songs.
//
// # Overview
//
// Each supported site has an [Adapter] that recognizes its pages and reads
// the song-shaped value out of the parsed HTML. Adapters form a closed set,
// tried in registration order by [Detect]:
//
//   - worshipinitiative: chord/lyric tables, one table per line
//   - worshiptogether: ChordPro segments, headers inferred from keywords
//   - ultimateguitar: a preformatted block of chord lines over lyric lines
//
// The layout code never learns which adapter ran.
//
// # Usage
//
//	s, name, err := adapter.Parse(resp.Body)
//	if errors.Is(err, errors.ErrCodeUnsupportedSource) {
//	    // no adapter recognized the page
//	}
//
// # Section Headers
//
// Pages that do not mark sections structurally use [IsSectionHeader]: a
// line naming a song part such as "Chorus", "Verse 2" or "[Pre-Chorus]".
package adapter
