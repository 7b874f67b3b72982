// Package markup turns the HTML and inline-LaTeX fragments found in Moodle
// question text into plain text, and locates the images those fragments
// reference.
package markup

import (
	"regexp"
	"strings"
)

var (
	lineBreakRe = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagRe       = regexp.MustCompile(`<[^>]+>`)
	inlineMath  = regexp.MustCompile(`(?s)\\\((.*?)\\\)`)
)

// entities is the full set of entities Normalize decodes. Anything else is
// left as written.
var entities = strings.NewReplacer(
	"&nbsp;", " ",
	"&mdash;", "-",
	"&lt;", "<",
	"&gt;", ">",
)

// Normalize converts a markup fragment into plain text: line-break tags become
// newlines, every other tag is dropped, a few entities are decoded and inline
// math spans are transliterated to Unicode. The result is not trimmed.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := lineBreakRe.ReplaceAllString(raw, "\n")
	s = tagRe.ReplaceAllString(s, "")
	s = entities.Replace(s)
	s = inlineMath.ReplaceAllStringFunc(s, func(span string) string {
		return TranslateMath(span[2 : len(span)-2])
	})
	return s
}
