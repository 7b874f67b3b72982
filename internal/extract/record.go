package extract

import (
	"github.com/Todamie/moodle-xml-to-txt/internal/doctree"
	"github.com/Todamie/moodle-xml-to-txt/internal/markup"
)

// QuestionRecord is one question with its cleaned text and answers.
type QuestionRecord struct {
	Text    string         `json:"question" yaml:"question"`
	RawText string         `json:"-" yaml:"-"`
	Answers []AnswerRecord `json:"answers" yaml:"answers"`
	Node    *doctree.Node  `json:"-" yaml:"-"` // Source <question>; owned by the DocTree
}

// AnswerRecord is one answer option.
type AnswerRecord struct {
	Correct  bool    `json:"correct" yaml:"correct"`
	Fraction float64 `json:"fraction" yaml:"fraction"`
	Text     string  `json:"text" yaml:"text"`
	RawText  string  `json:"-" yaml:"-"`
}

// CorrectCount returns how many answers are marked correct.
func (q QuestionRecord) CorrectCount() int {
	n := 0
	for _, a := range q.Answers {
		if a.Correct {
			n++
		}
	}
	return n
}

// HasImages reports whether the question or any of its answers mentions an
// @name token.
func (q QuestionRecord) HasImages() bool {
	if markup.HasImageToken(q.RawText) {
		return true
	}
	for _, a := range q.Answers {
		if markup.HasImageToken(a.RawText) {
			return true
		}
	}
	return false
}

// ContainsImages reports whether any record in a file mentions an image.
// It decides between the plain-text and the document renderer for the whole
// file.
func ContainsImages(records []QuestionRecord) bool {
	for _, q := range records {
		if q.HasImages() {
			return true
		}
	}
	return false
}
