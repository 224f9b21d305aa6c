package adapter

import (
	"regexp"
	"strings"
)

// sectionKeywords name the parts of a song that open a new section.
var sectionKeywords = []string{
	"chorus",
	"verse",
	"intro",
	"interlude",
	"outro",
	"bridge",
	"refrain",
	"pre-chorus",
	"post-chorus",
	"instrumental",
	"post chorus",
	"pre chorus",
	"tag",
	"turnaround",
	"breakdown",
	"final chord",
	"repeat",
	"ending",
	"coda",
	"turn",
}

var sectionRe = regexp.MustCompile(`(?i)\b(` + strings.Join(sectionKeywords, "|") + `)\b`)

// maxHeaderWords bounds unbracketed headers, so a lyric that merely
// contains a keyword ("I will turn to you") stays a lyric.
const maxHeaderWords = 4

// IsSectionHeader reports whether line names a song part.
func IsSectionHeader(line string) bool {
	t := strings.TrimSpace(line)
	if !sectionRe.MatchString(t) {
		return false
	}
	if strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]") {
		return true
	}
	return len(strings.Fields(t)) <= maxHeaderWords
}

// cleanHeader removes square brackets and surrounding blanks from a header.
func cleanHeader(line string) string {
	return strings.TrimSpace(strings.NewReplacer("[", "", "]", "").Replace(line))
}
