package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Todamie/moodle-xml-to-txt/internal/doctree"
)

// Parser converts raw question-bank bytes into a DocTree.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.DocTree, error)
}

// ErrUnsupported is returned by ForFile for files it has no parser for.
var ErrUnsupported = errors.New("unsupported file extension")

// SupportedExtensions lists file extensions this tool can handle.
var SupportedExtensions = map[string]bool{
	".xml": true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xml":
		return &MoodleXMLParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
