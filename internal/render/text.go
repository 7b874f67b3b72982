package render

import (
	"strings"

	"github.com/Todamie/moodle-xml-to-txt/internal/extract"
)

// Text renders records as a plain-text listing, one block per question
// separated by blank lines.
func Text(records []extract.QuestionRecord, style LabelStyle) string {
	var b strings.Builder
	for _, q := range records {
		b.WriteString(questionPrefix(style))
		b.WriteString(q.Text)
		b.WriteString("\n")

		for i, a := range q.Answers {
			b.WriteString(answerPrefix(style, i, a))
			b.WriteString(a.Text)
			b.WriteString("\n")
		}
		if line, ok := summaryLine(style, q.Answers); ok {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
