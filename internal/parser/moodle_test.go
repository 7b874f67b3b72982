package parser

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Todamie/moodle-xml-to-txt/internal/doctree"
	"golang.org/x/text/encoding/charmap"
)

func TestMoodleXMLParser_BuildsTree(t *testing.T) {
	input := `<?xml version="1.0" encoding="UTF-8"?>
<quiz>
  <question type="multichoice">
    <questiontext format="html"><text><![CDATA[<p>2 + 2?</p>]]></text></questiontext>
    <answer fraction="100" format="html"><text>4</text></answer>
    <answer fraction="0" format="html"><text>5</text></answer>
  </question>
</quiz>`
	p := &MoodleXMLParser{}
	tree, err := p.Parse(strings.NewReader(input), "dir/bank.xml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "bank" {
		t.Errorf("expected title %q, got %q", "bank", tree.Title)
	}

	questions := tree.Questions()
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	q := questions[0]
	if typ, _ := q.Attr("type"); typ != "multichoice" {
		t.Errorf("expected type multichoice, got %q", typ)
	}
	if got := q.FindText("questiontext/text"); got != "<p>2 + 2?</p>" {
		t.Errorf("expected CDATA preserved as text, got %q", got)
	}
	answers := q.ChildrenByTag("answer")
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
	if f, ok := answers[0].Attr("fraction"); !ok || f != "100" {
		t.Errorf("expected fraction 100, got %q (present=%v)", f, ok)
	}
}

func TestMoodleXMLParser_MalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not xml", "this is not a question bank"},
		{"unclosed", "<quiz><question><questiontext>"},
		{"mismatched", "<quiz><question></answer></quiz>"},
		{"wrong root", "<html><body/></html>"},
		{"element after root", "<quiz><question/></quiz><question><broken"},
		{"second root", "<quiz></quiz><quiz></quiz>"},
		{"text after root", "<quiz></quiz>trailing junk"},
	}
	p := &MoodleXMLParser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(strings.NewReader(tt.input), "bad.xml")
			if err == nil {
				t.Fatal("expected error for malformed input")
			}
			if !errors.Is(err, doctree.ErrStructure) {
				t.Errorf("expected ErrStructure, got %v", err)
			}
			var pe *doctree.ParseError
			if !errors.As(err, &pe) || pe.File != "bad.xml" {
				t.Errorf("expected *ParseError for bad.xml, got %v", err)
			}
		})
	}
}

func TestMoodleXMLParser_AllowsTrailingMisc(t *testing.T) {
	input := "<?xml version=\"1.0\"?>\n<quiz><question/></quiz>\n<!-- exported -->\n\n"
	tree, err := (&MoodleXMLParser{}).Parse(strings.NewReader(input), "bank.xml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(tree.Questions()); n != 1 {
		t.Errorf("expected 1 question, got %d", n)
	}
}

func TestMoodleXMLParser_LegacyCharset(t *testing.T) {
	body := `<quiz><question type="truefalse"><questiontext><text>Вопрос</text></questiontext></question></quiz>`
	encoded, err := charmap.Windows1251.NewEncoder().String(body)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	input := `<?xml version="1.0" encoding="windows-1251"?>` + encoded

	tree, err := (&MoodleXMLParser{}).Parse(bytes.NewReader([]byte(input)), "legacy.xml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tree.Questions()[0].FindText("questiontext/text"); got != "Вопрос" {
		t.Errorf("expected decoded Cyrillic text, got %q", got)
	}
}

func TestForFile(t *testing.T) {
	if _, err := ForFile("bank.XML"); err != nil {
		t.Errorf("expected .XML to be supported: %v", err)
	}
	if _, err := ForFile("bank.json"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported for .json, got %v", err)
	}
	if !IsSupportedExtension("a/b/c.xml") || IsSupportedExtension("c.txt") {
		t.Error("unexpected IsSupportedExtension result")
	}
}
