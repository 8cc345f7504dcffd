package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeLabel lowers and strips a checkpoint or category label so site
// variants like "Finish Net" and "finish net " compare equal.
func NormalizeLabel(label string) string {
	label = strings.ToLower(label)
	label = strings.Trim(label, " \n\t")
	label = whitespaceRegex.ReplaceAllString(label, " ")
	return label
}

// placeholderRegex matches the stray characters the timing sites use for
// empty cells: quoted or bare hyphens, apostrophes and spaces.
var placeholderRegex = regexp.MustCompile(`('-'|'+|-| )`)

// StripPlaceholder collapses a placeholder-only cell value to "". Values
// carrying real content are returned with the stray characters removed,
// which leaves time strings like "01:02:03" untouched.
func StripPlaceholder(s string) string {
	return placeholderRegex.ReplaceAllString(s, "")
}

// IsPlaceholder reports whether the raw cell value carries no content at
// all once placeholder characters are stripped.
func IsPlaceholder(s string) bool {
	return StripPlaceholder(s) == ""
}
