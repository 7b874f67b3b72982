package render

import "github.com/Todamie/moodle-xml-to-txt/internal/extract"

// Mode is the output format chosen for a whole file.
type Mode int

const (
	ModeText Mode = iota
	ModeDocx
)

// Select picks the document renderer when any record mentions an image and
// plain text otherwise.
func Select(records []extract.QuestionRecord) Mode {
	if extract.ContainsImages(records) {
		return ModeDocx
	}
	return ModeText
}

// Ext returns the output file extension for the mode.
func (m Mode) Ext() string {
	if m == ModeDocx {
		return ".docx"
	}
	return ".txt"
}

// ContentType returns the MIME type of the rendered output.
func (m Mode) ContentType() string {
	if m == ModeDocx {
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "text/plain; charset=utf-8"
}

func (m Mode) String() string {
	if m == ModeDocx {
		return "docx"
	}
	return "text"
}
