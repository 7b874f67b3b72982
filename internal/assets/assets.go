// Package assets writes the base64 files embedded in a Moodle question to a
// scratch directory so they can be placed into a rendered document.
package assets

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Todamie/moodle-xml-to-txt/internal/doctree"
)

// AssetMap maps an embedded filename to the path it was written to.
type AssetMap map[string]string

// Lookup returns the materialized path for name.
func (m AssetMap) Lookup(name string) (string, bool) {
	p, ok := m[name]
	return p, ok
}

// Materialize decodes every <file encoding="base64"> element below node, at
// any depth, into dir. Files without a name, with another encoding, with an
// empty payload or with a payload that is not valid base64 are skipped.
// dir must already exist; it is neither created nor removed here.
func Materialize(node *doctree.Node, dir string) (AssetMap, error) {
	assets := make(AssetMap)
	for _, f := range node.Descendants("file") {
		name, _ := f.Attr("name")
		encoding, _ := f.Attr("encoding")
		if name == "" || !strings.EqualFold(encoding, "base64") {
			continue
		}
		payload := strings.Join(strings.Fields(f.Text), "")
		if payload == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			continue
		}

		base := filepath.Base(filepath.Clean("/" + name))
		if base == "/" || base == "." {
			continue
		}
		path := filepath.Join(dir, base)
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return assets, fmt.Errorf("write asset %s: %w", name, err)
		}
		assets[name] = path
	}
	return assets, nil
}
