package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/Todamie/moodle-xml-to-txt/internal/parser"
)

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Converted int
	Failed    int
	Jobs      []*Job
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any file failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// AllFailed reports whether nothing was converted.
func (r BatchResult) AllFailed() bool {
	return r.Converted == 0 && r.Failed > 0
}

// ConvertBatch processes paths one after another, printing a status line
// per file to w and a summary at the end.
func (c *Converter) ConvertBatch(paths []string, w io.Writer) BatchResult {
	var result BatchResult
	for _, path := range paths {
		job := NewJob(path)
		c.Process(job)
		result.Jobs = append(result.Jobs, job)

		if job.Succeeded() {
			result.Converted++
			fmt.Fprintf(w, "converted: %s -> %s (%s, %d questions)\n",
				job.InputPath, job.OutputPath, job.Mode, job.Questions)
		} else {
			result.Failed++
			fmt.Fprintf(w, "failed:    %s (%v)\n", job.InputPath, job.Err)
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())
	return result
}

// Discover lists the supported input files directly inside dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
