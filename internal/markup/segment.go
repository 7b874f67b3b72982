package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// SegmentKind distinguishes text from image segments.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentImage
)

// Segment is one piece of a fragment split on image boundaries. Text
// segments keep their raw markup and must be normalized by the caller.
type Segment struct {
	Kind SegmentKind
	Raw  string // Markup for text segments
	Ref  string // Image reference as written (images only)
	Name string // Percent-decoded filename (images only)
}

// Split cuts a raw fragment at every embedded image: <img> tags pointing
// into the export and bare @name.ext tokens in text. Text between images is
// returned unmodified so it can be cleaned per segment. Empty text segments
// are not emitted.
func Split(fragment string) []Segment {
	var segs []Segment
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			segs = append(segs, Segment{Kind: SegmentText, Raw: text.String()})
			text.Reset()
		}
	}
	image := func(ref string) {
		flush()
		segs = append(segs, Segment{Kind: SegmentImage, Ref: ref, Name: DecodeRef(ref)})
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := string(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			if ref, ok := pluginImage(z.Token()); ok {
				image(ref)
				continue
			}
			text.WriteString(raw)
		case html.TextToken:
			last := 0
			for _, m := range bareImageRefs(raw) {
				text.WriteString(raw[last:m[0]])
				image(raw[m[2]:m[3]])
				last = m[1]
			}
			text.WriteString(raw[last:])
		default:
			text.WriteString(raw)
		}
	}
	flush()
	return segs
}
