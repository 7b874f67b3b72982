package extract

import (
	"strconv"
	"strings"

	"github.com/Todamie/moodle-xml-to-txt/internal/doctree"
	"github.com/Todamie/moodle-xml-to-txt/internal/markup"
)

// Options controls which questions and answers are kept.
type Options struct {
	// IncludeAllAnswers keeps every answer and every question. When false only
	// correct answers are kept and questions without one are dropped.
	IncludeAllAnswers bool
}

// DefaultOptions returns the letter-coded, keep-everything behavior.
func DefaultOptions() Options {
	return Options{IncludeAllAnswers: true}
}

// Extract walks the questions of a parsed bank in document order.
// Missing text degrades to "" and a missing or unreadable fraction to 0.
func Extract(tree *doctree.DocTree, opts Options) []QuestionRecord {
	var records []QuestionRecord
	for _, qn := range tree.Questions() {
		// Category entries only set the import category.
		if t, _ := qn.Attr("type"); t == "category" {
			continue
		}

		rec := QuestionRecord{
			RawText: qn.FindText("questiontext/text"),
			Node:    qn,
		}
		rec.Text = clean(rec.RawText)

		for _, an := range qn.ChildrenByTag("answer") {
			ans := answerFromNode(an)
			if !opts.IncludeAllAnswers && !ans.Correct {
				continue
			}
			rec.Answers = append(rec.Answers, ans)
		}

		if !opts.IncludeAllAnswers && len(rec.Answers) == 0 {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func answerFromNode(n *doctree.Node) AnswerRecord {
	raw := n.FindText("text")
	fraction := ParseFraction(n)
	return AnswerRecord{
		Correct:  fraction > 0,
		Fraction: fraction,
		Text:     clean(raw),
		RawText:  raw,
	}
}

// ParseFraction reads the fraction attribute of an answer element.
func ParseFraction(n *doctree.Node) float64 {
	v, ok := n.Attr("fraction")
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}

func clean(raw string) string {
	return strings.TrimSpace(markup.Normalize(raw))
}
