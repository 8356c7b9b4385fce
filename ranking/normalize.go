package ranking

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

var (
	separatorRun = regexp.MustCompile(`[\s\p{Z}\-_.]+`)

	// Season/part/episode markers: 第2季, 第十二集, season 3, part2, episode 10.
	episodeMarker = regexp.MustCompile(`第[0-9一二三四五六七八九十百零〇两]+[季部集期]|\b(?:season|part|episode)\s*[0-9]+`)

	bracketStripper = strings.NewReplacer(
		"(", "", ")", "", "[", "", "]", "", "{", "", "}", "", "<", "", ">", "",
		"（", "", "）", "", "［", "", "］", "", "｛", "", "｝", "",
		"【", "", "】", "", "《", "", "》", "", "〈", "", "〉", "",
		"「", "", "」", "", "『", "", "』", "", "〔", "", "〕", "",
	)
)

// Normalize canonicalizes text for comparison. It folds full-width forms,
// lower-cases, and strips separators, brackets and episode markers.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	s := strings.ToLower(width.Fold.String(text))
	// stripping one construct can expose another, e.g. "season(2)"
	for {
		next := episodeMarker.ReplaceAllString(s, "")
		next = separatorRun.ReplaceAllString(next, "")
		next = bracketStripper.Replace(next)
		next = strings.TrimSpace(next)
		if next == s {
			return next
		}
		s = next
	}
}
