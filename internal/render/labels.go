// Package render turns extracted question records into a flat text listing
// or a .docx document with the question images placed inline.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Todamie/moodle-xml-to-txt/internal/extract"
)

// LabelStyle selects how answers are labeled.
type LabelStyle string

const (
	// LabelLetter lists answers as "A) ..." followed by a summary of the
	// correct letters.
	LabelLetter LabelStyle = "letter"
	// LabelPlus marks answers with "+" (correct) or "-" (incorrect).
	LabelPlus LabelStyle = "plus"
	// LabelProse writes "Вопрос: ..." and numbered "Правильный ответ N: ..." lines.
	LabelProse LabelStyle = "prose"
)

// ErrUnknownLabelStyle is returned for a style name other than letter, plus or prose.
var ErrUnknownLabelStyle = errors.New("unknown label style")

// ParseLabelStyle validates a label style name.
func ParseLabelStyle(s string) (LabelStyle, error) {
	switch style := LabelStyle(strings.ToLower(strings.TrimSpace(s))); style {
	case LabelLetter, LabelPlus, LabelProse:
		return style, nil
	case "":
		return LabelLetter, nil
	default:
		return "", fmt.Errorf("%w %q (want letter, plus or prose)", ErrUnknownLabelStyle, s)
	}
}

const summaryPrefix = "Ответы: "

// Letter returns the label for the answer at zero-based position i.
// Only A through Z are meaningful; later positions continue through the
// following code points.
func Letter(i int) string {
	return string(rune('A' + i))
}

func questionPrefix(style LabelStyle) string {
	if style == LabelProse {
		return "Вопрос: "
	}
	return ""
}

func answerPrefix(style LabelStyle, i int, a extract.AnswerRecord) string {
	switch style {
	case LabelPlus:
		if a.Correct {
			return "+ "
		}
		return "- "
	case LabelProse:
		if a.Correct {
			return fmt.Sprintf("  Правильный ответ %d: ", i+1)
		}
		return fmt.Sprintf("  Ответ %d: ", i+1)
	default:
		return Letter(i) + ") "
	}
}

// summaryLine lists the letters of the correct answers, e.g. "Ответы: B, D".
// It reports false when the style has no summary or nothing is correct.
func summaryLine(style LabelStyle, answers []extract.AnswerRecord) (string, bool) {
	if style != LabelLetter && style != "" {
		return "", false
	}
	var letters []string
	for i, a := range answers {
		if a.Correct {
			letters = append(letters, Letter(i))
		}
	}
	if len(letters) == 0 {
		return "", false
	}
	return summaryPrefix + strings.Join(letters, ", "), true
}
