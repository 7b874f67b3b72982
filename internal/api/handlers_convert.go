package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Todamie/moodle-xml-to-txt/internal/doctree"
	"github.com/Todamie/moodle-xml-to-txt/internal/extract"
	"github.com/Todamie/moodle-xml-to-txt/internal/parser"
	"github.com/Todamie/moodle-xml-to-txt/internal/pipeline"
	"github.com/Todamie/moodle-xml-to-txt/internal/render"
)

// questionCountHeader carries the number of converted questions.
const questionCountHeader = "X-Question-Count"

// upload is a validated question bank posted as multipart form data.
type upload struct {
	filename string
	data     []byte
	opts     pipeline.Options
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	conv := pipeline.NewConverter(up.opts, s.log.With("request_id", middleware.GetReqID(r.Context())), nil)
	job := pipeline.NewJob(up.filename)
	start := time.Now()
	out, err := conv.Convert(bytes.NewReader(up.data), up.filename, job)
	job.Duration = time.Since(start)
	if err != nil {
		job.Fail(err)
		s.stats.Observe(job)
		s.log.Error("conversion failed", "file", up.filename, "phase", job.Phase, "error", err)
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	job.Mode = out.Mode
	job.Questions = len(out.Records)
	job.SetStatus(pipeline.StatusCompleted)
	s.stats.Observe(job)

	name := sanitizeFilename(out.Title + out.Mode.Ext())
	w.Header().Set("Content-Type", out.Mode.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set(questionCountHeader, strconv.Itoa(job.Questions))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(out.Data)
}

type inspectResponse struct {
	Title     string                   `json:"title"`
	Mode      string                   `json:"mode"`
	Questions []extract.QuestionRecord `json:"questions"`
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	conv := pipeline.NewConverter(up.opts, s.log, nil)
	tree, records, err := conv.Parse(bytes.NewReader(up.data), up.filename)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	if records == nil {
		records = []extract.QuestionRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(inspectResponse{
		Title:     tree.Title,
		Mode:      render.Select(records).String(),
		Questions: records,
	})
}

// readUpload parses the multipart form and applies the per-request
// overrides. On failure it has already written the error response.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (upload, bool) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			jsonError(w, fmt.Sprintf("request exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return upload{}, false
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return upload{}, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return upload{}, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %q", filepath.Ext(filename)), http.StatusBadRequest)
		return upload{}, false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return upload{}, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return upload{}, false
	}

	opts := s.cfg.ConvertOptions()
	opts.OutputDir = ""
	if v := r.FormValue("labels"); v != "" {
		style, err := render.ParseLabelStyle(v)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return upload{}, false
		}
		opts.Labels = style
	}
	if v := r.FormValue("all_answers"); v != "" {
		all, err := strconv.ParseBool(v)
		if err != nil {
			jsonError(w, fmt.Sprintf("all_answers: invalid boolean %q", v), http.StatusBadRequest)
			return upload{}, false
		}
		opts.Extract.IncludeAllAnswers = all
	}

	return upload{filename: filename, data: data, opts: opts}, true
}

// statusFor maps a conversion error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, doctree.ErrStructure):
		return http.StatusUnprocessableEntity
	case errors.Is(err, parser.ErrUnsupported):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
