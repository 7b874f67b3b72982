package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned for output encodings that have no WHATWG label.
var ErrUnknownEncoding = errors.New("unknown output encoding")

// LookupEncoding resolves an encoding label such as "windows-1251".
// An empty label or any UTF-8 alias returns nil, meaning no transcoding.
func LookupEncoding(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(label)
	switch strings.ToLower(label) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, label)
	}
	return enc, nil
}

// WriteText writes s to w in the given encoding. Characters the encoding
// cannot represent are replaced rather than failing the write.
func WriteText(w io.Writer, s, label string) error {
	enc, err := LookupEncoding(label)
	if err != nil {
		return err
	}
	if enc == nil {
		_, err := io.WriteString(w, s)
		return err
	}
	tw := transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder()))
	if _, err := io.WriteString(tw, s); err != nil {
		return err
	}
	return tw.Close()
}
