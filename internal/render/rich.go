package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/Todamie/moodle-xml-to-txt/internal/assets"
	"github.com/Todamie/moodle-xml-to-txt/internal/extract"
	"github.com/Todamie/moodle-xml-to-txt/internal/markup"
)

// emuPerInch converts inches to the English Metric Units used by drawingml.
const emuPerInch = 914400

// DefaultImageWidth is the display width of embedded pictures, in inches.
const DefaultImageWidth = 4.0

// RichOptions controls the document renderer.
type RichOptions struct {
	Labels      LabelStyle
	ImageWidth  float64      // Inches; DefaultImageWidth when <= 0
	ScratchRoot string       // Parent for the per-pass scratch dir; os.TempDir() when empty
	Log         *slog.Logger // Receives missing-image warnings
}

// Rich renders records into a .docx document. Embedded files are decoded
// into a scratch directory that lives only for the duration of the call.
func Rich(records []extract.QuestionRecord, opts RichOptions) (*docx.Docx, error) {
	if opts.ImageWidth <= 0 {
		opts.ImageWidth = DefaultImageWidth
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}

	scratch, err := os.MkdirTemp(opts.ScratchRoot, "moodle2doc-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	doc := docx.New().WithDefaultTheme()
	for i, q := range records {
		dir := filepath.Join(scratch, fmt.Sprintf("q%d", i+1))
		if err := os.Mkdir(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create asset dir: %w", err)
		}
		found, err := assets.Materialize(q.Node, dir)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}

		w := &richWriter{
			doc:    doc,
			assets: found,
			opts:   opts,
			log:    opts.Log.With("question", i+1),
		}
		w.question(q)
		for j, a := range q.Answers {
			w.answer(j, a)
		}
		if line, ok := summaryLine(opts.Labels, q.Answers); ok {
			doc.AddParagraph().AddText(line)
		}
		doc.AddParagraph()
	}
	return doc, nil
}

type richWriter struct {
	doc    *docx.Docx
	assets assets.AssetMap
	opts   RichOptions
	log    *slog.Logger
}

// question writes one paragraph per text line and one per image.
func (w *richWriter) question(q extract.QuestionRecord) {
	prefix := questionPrefix(w.opts.Labels)
	for _, seg := range markup.Split(q.RawText) {
		if seg.Kind == markup.SegmentImage {
			if prefix != "" {
				w.doc.AddParagraph().AddText(strings.TrimSpace(prefix))
				prefix = ""
			}
			w.image(w.doc.AddParagraph(), seg, "")
			continue
		}
		for _, line := range strings.Split(strings.TrimSpace(markup.Normalize(seg.Raw)), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			w.doc.AddParagraph().AddText(prefix + line)
			prefix = ""
		}
	}
	if prefix != "" {
		w.doc.AddParagraph().AddText(strings.TrimSpace(prefix))
	}
}

// answer writes a single labeled paragraph with any images inline.
func (w *richWriter) answer(i int, a extract.AnswerRecord) {
	para := w.doc.AddParagraph()
	para.AddText(answerPrefix(w.opts.Labels, i, a))

	wrote := false
	for _, seg := range markup.Split(a.RawText) {
		if seg.Kind == markup.SegmentImage {
			sep := ""
			if wrote {
				sep = " "
			}
			if w.image(para, seg, sep) {
				wrote = true
			}
			continue
		}
		text := strings.Join(strings.Fields(markup.Normalize(seg.Raw)), " ")
		if text == "" {
			continue
		}
		if wrote {
			text = " " + text
		}
		para.AddText(text)
		wrote = true
	}
}

// image appends the picture for seg to para, or sep and a visible placeholder
// when it cannot be resolved. It reports whether the placeholder was written.
func (w *richWriter) image(para *docx.Paragraph, seg markup.Segment, sep string) bool {
	path, ok := w.assets.Lookup(seg.Name)
	if !ok {
		path, ok = w.assets.Lookup(seg.Ref)
	}
	if !ok {
		return w.missing(para, seg, sep, "no embedded file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return w.missing(para, seg, sep, err.Error())
	}
	data, err = assets.ForEmbedding(data)
	if err != nil {
		return w.missing(para, seg, sep, err.Error())
	}
	run, err := para.AddInlineDrawing(data)
	if err != nil {
		return w.missing(para, seg, sep, err.Error())
	}
	w.scale(run)
	return false
}

func (w *richWriter) scale(run *docx.Run) {
	width := int64(w.opts.ImageWidth * emuPerInch)
	for _, child := range run.Children {
		d, ok := child.(*docx.Drawing)
		if !ok || d.Inline == nil {
			continue
		}
		cx, cy := d.Inline.Extent.CX, d.Inline.Extent.CY
		if cx <= 0 {
			continue
		}
		d.Inline.Size(width, cy*width/cx)
	}
}

func (w *richWriter) missing(para *docx.Paragraph, seg markup.Segment, sep, reason string) bool {
	w.log.Warn("image not found", "image", seg.Name, "reason", reason)
	para.AddText(sep + MissingImageText(seg.Name))
	return true
}

// MissingImageText is the placeholder written in place of an unresolved image.
func MissingImageText(name string) string {
	return fmt.Sprintf("[Image %s not found]", name)
}
