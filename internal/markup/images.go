package markup

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PluginFilePrefix is the src prefix Moodle uses for images stored as files
// inside the export rather than at an external URL.
const PluginFilePrefix = "@@PLUGINFILE@@/"

var (
	imageTokenRe = regexp.MustCompile(`@[\p{L}\p{N}_]`)
	bareImageRe  = regexp.MustCompile(`@([\p{L}\p{N}_\-]+(?:\.[\p{L}\p{N}_\-]+)*\.[A-Za-z0-9]+)`)
)

// FindImageRefs returns the filenames referenced by <img> tags whose src
// points into the export. Names are returned as written, still URL-escaped.
func FindImageRefs(fragment string) []string {
	var refs []string
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return refs
		case html.StartTagToken, html.SelfClosingTagToken:
			if ref, ok := pluginImage(z.Token()); ok {
				refs = append(refs, ref)
			}
		}
	}
}

// HasImageToken reports whether fragment mentions anything that looks like an
// @name reference. It is a cheap presence test, not a promise that the image
// can be resolved.
func HasImageToken(fragment string) bool {
	return imageTokenRe.MatchString(fragment)
}

// DecodeRef percent-decodes an image reference. Invalid escapes leave the
// reference unchanged.
func DecodeRef(ref string) string {
	name, err := url.PathUnescape(ref)
	if err != nil {
		return ref
	}
	return name
}

func pluginImage(tok html.Token) (string, bool) {
	if tok.DataAtom != atom.Img {
		return "", false
	}
	for _, a := range tok.Attr {
		if a.Key == "src" && strings.HasPrefix(a.Val, PluginFilePrefix) {
			return strings.TrimPrefix(a.Val, PluginFilePrefix), true
		}
	}
	return "", false
}

// bareImageRefs returns [start, end, nameStart, nameEnd] index groups for
// @name.ext tokens in s that begin a word.
func bareImageRefs(s string) [][]int {
	var out [][]int
	for _, m := range bareImageRe.FindAllStringSubmatchIndex(s, -1) {
		if m[0] > 0 {
			prev, _ := utf8.DecodeLastRuneInString(s[:m[0]])
			if prev == '@' || prev == '.' || prev == '_' || unicode.IsLetter(prev) || unicode.IsDigit(prev) {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}
