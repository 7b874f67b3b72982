package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Todamie/moodle-xml-to-txt/internal/doctree"
	"golang.org/x/net/html/charset"
)

// rootTag is the document element of a Moodle XML export.
const rootTag = "quiz"

// MoodleXMLParser handles Moodle XML question-bank exports.
type MoodleXMLParser struct{}

func (p *MoodleXMLParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	dec := xml.NewDecoder(r)
	// Exports from older Moodle installs may declare windows-1251 or similar.
	dec.CharsetReader = charset.NewReaderLabel

	root, err := decodeTree(dec)
	if err != nil {
		return nil, &doctree.ParseError{File: filename, Err: err}
	}
	if root.Tag != rootTag {
		return nil, &doctree.ParseError{
			File: filename,
			Err:  fmt.Errorf("unexpected root element <%s>, want <%s>", root.Tag, rootTag),
		}
	}

	return &doctree.DocTree{
		Title: strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)),
		Root:  root,
	}, nil
}

// decodeTree reads tokens until the first element is closed and returns it,
// rejecting anything but trailing whitespace after it.
func decodeTree(dec *xml.Decoder) (*doctree.Node, error) {
	var stack []*doctree.Node
	var texts []*strings.Builder

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if len(stack) > 0 {
				return nil, fmt.Errorf("unexpected end of document inside <%s>", stack[len(stack)-1].Tag)
			}
			return nil, fmt.Errorf("no root element")
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &doctree.Node{Tag: t.Name.Local}
			if len(t.Attr) > 0 {
				node.Attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					node.Attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
			texts = append(texts, &strings.Builder{})

		case xml.CharData:
			if len(texts) > 0 {
				texts[len(texts)-1].Write(t)
			}

		case xml.EndElement:
			node := stack[len(stack)-1]
			node.Text = texts[len(texts)-1].String()
			stack = stack[:len(stack)-1]
			texts = texts[:len(texts)-1]
			if len(stack) == 0 {
				if err := expectEnd(dec); err != nil {
					return nil, err
				}
				return node, nil
			}
		}
	}
}

// expectEnd reads the rest of the document after the root element closes.
// Only whitespace, comments and processing instructions may follow it.
func expectEnd(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("after root element: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return fmt.Errorf("unexpected element <%s> after root element", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return fmt.Errorf("unexpected text %q after root element", truncate(string(t), 32))
			}
		}
	}
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
