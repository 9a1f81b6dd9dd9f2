package assistant

import (
	"regexp"
	"strings"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	emphasisReplacer  = strings.NewReplacer("*", "", "_", "")
)

// Clean prepares model output for speech synthesis: raw URLs are removed
// (action results carry event links the user should never hear), emphasis
// markup is stripped and whitespace runs collapse to single spaces.
func Clean(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = emphasisReplacer.Replace(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
