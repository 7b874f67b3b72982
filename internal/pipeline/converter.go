package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Todamie/moodle-xml-to-txt/internal/doctree"
	"github.com/Todamie/moodle-xml-to-txt/internal/extract"
	"github.com/Todamie/moodle-xml-to-txt/internal/parser"
	"github.com/Todamie/moodle-xml-to-txt/internal/render"
)

// Options configures a conversion.
type Options struct {
	Extract     extract.Options
	Labels      render.LabelStyle
	ImageWidth  float64 // Inches
	Encoding    string  // Text output encoding label; UTF-8 when empty
	OutputDir   string  // Where outputs go; next to the input when empty
	ScratchRoot string  // Parent for rich-render scratch dirs
}

// DefaultOptions returns the canonical letter-coded, image-aware settings.
func DefaultOptions() Options {
	return Options{
		Extract:    extract.DefaultOptions(),
		Labels:     render.LabelLetter,
		ImageWidth: render.DefaultImageWidth,
	}
}

// Output is a rendered question bank held in memory.
type Output struct {
	Mode    render.Mode
	Title   string
	Records []extract.QuestionRecord
	Data    []byte
}

// Converter runs question banks through parse, extract and render.
type Converter struct {
	opts  Options
	log   *slog.Logger
	stats *DurationStats
}

// NewConverter creates a converter. log and stats may be nil.
func NewConverter(opts Options, log *slog.Logger, stats *DurationStats) *Converter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Converter{opts: opts, log: log, stats: stats}
}

// Parse reads a question bank and extracts its records. The returned
// records point into the returned tree.
func (c *Converter) Parse(r io.Reader, filename string) (*doctree.DocTree, []extract.QuestionRecord, error) {
	p, err := parser.ForFile(filename)
	if err != nil {
		return nil, nil, err
	}
	tree, err := p.Parse(r, filename)
	if err != nil {
		return nil, nil, err
	}
	return tree, extract.Extract(tree, c.opts.Extract), nil
}

// Convert renders a question bank read from r. job, when non-nil, follows
// the phases as they run. Panics from the document libraries are returned as
// ErrInternal so one file cannot take down a batch.
func (c *Converter) Convert(r io.Reader, filename string, job *Job) (out *Output, err error) {
	defer func() {
		if p := recover(); p != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrInternal, p)
		}
	}()

	setStatus := func(s JobStatus) {
		if job != nil {
			job.SetStatus(s)
		}
	}

	setStatus(StatusParsing)
	tree, records, err := c.Parse(r, filename)
	if err != nil {
		return nil, err
	}
	setStatus(StatusExtracting)

	out = &Output{
		Mode:    render.Select(records),
		Title:   tree.Title,
		Records: records,
	}

	setStatus(StatusRendering)
	var buf bytes.Buffer
	switch out.Mode {
	case render.ModeDocx:
		doc, err := render.Rich(records, render.RichOptions{
			Labels:      c.opts.Labels,
			ImageWidth:  c.opts.ImageWidth,
			ScratchRoot: c.opts.ScratchRoot,
			Log:         c.log.With("file", filename),
		})
		if err != nil {
			return nil, fmt.Errorf("render document: %w", err)
		}
		if _, err := doc.WriteTo(&buf); err != nil {
			return nil, fmt.Errorf("encode docx: %w", err)
		}
	default:
		if err := render.WriteText(&buf, render.Text(records, c.opts.Labels), c.opts.Encoding); err != nil {
			return nil, fmt.Errorf("encode text: %w", err)
		}
	}
	out.Data = buf.Bytes()
	return out, nil
}

// Process converts the file named by job.InputPath and writes the result
// beside it (or into OutputDir). Failures are recorded on the job, never
// returned, so one bad file cannot stop a batch.
func (c *Converter) Process(job *Job) {
	log := c.log.With("file", job.InputPath)
	start := time.Now()
	defer func() {
		job.Duration = time.Since(start)
		if c.stats != nil {
			c.stats.Observe(job)
		}
	}()

	f, err := os.Open(job.InputPath)
	if err != nil {
		log.Error("open failed", "error", err)
		job.Fail(fmt.Errorf("%w: %w", ErrRead, err))
		return
	}
	defer f.Close()

	out, err := c.Convert(f, job.InputPath, job)
	if err != nil {
		log.Error("conversion failed", "phase", job.Phase, "error", err)
		job.Fail(err)
		return
	}
	job.Mode = out.Mode
	job.Questions = len(out.Records)

	job.SetStatus(StatusWriting)
	job.OutputPath = OutputPath(job.InputPath, c.opts.OutputDir, out.Mode)
	if err := os.WriteFile(job.OutputPath, out.Data, 0o644); err != nil {
		log.Error("write failed", "output", job.OutputPath, "error", err)
		job.Fail(fmt.Errorf("%w: %w", ErrWrite, err))
		return
	}

	log.Info("converted", "output", job.OutputPath, "mode", out.Mode.String(), "questions", job.Questions)
	job.SetStatus(StatusCompleted)
}

// OutputPath replaces the input extension with the one for mode. When
// outDir is set the file is placed there instead of beside the input.
func OutputPath(input, outDir string, mode render.Mode) string {
	name := strings.TrimSuffix(input, filepath.Ext(input)) + mode.Ext()
	if outDir != "" {
		return filepath.Join(outDir, filepath.Base(name))
	}
	return name
}
