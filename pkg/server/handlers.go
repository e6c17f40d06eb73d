package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	rerrors "github.com/raptor-dev/raptor/internal/errors"
	"github.com/raptor-dev/raptor/pkg/engine"
	"github.com/raptor-dev/raptor/pkg/render"
	"github.com/raptor-dev/raptor/pkg/vtree"
)

// Render sources, used as metric and span labels.
const (
	sourceBody = "body"
	sourceDocs = "docs"
	sourceWS   = "ws"
)

// documentExts are the file extensions served and watched as documents.
var documentExts = []string{".yaml", ".yml", ".json"}

func isDocument(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range documentExts {
		if ext == e {
			return true
		}
	}
	return false
}

// render loads a document with load and renders it, recording a span and
// metrics for source. The render stops when ctx is done or the document
// expands past MaxNodes.
func (s *Server) render(ctx context.Context, source string, load func() (*vtree.Document, error), pretty bool) (string, error) {
	start := time.Now()
	_, span := s.tracer.Start(ctx, "raptor.render",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("raptor.source", source)),
	)
	defer span.End()

	html, err := func() (string, error) {
		doc, err := load()
		if err != nil {
			return "", err
		}
		span.SetAttributes(attribute.Int("raptor.components", len(doc.Components)))
		cfg := s.config.Render
		cfg.Pretty = pretty
		return doc.Render(render.NewRenderer(cfg),
			engine.Context(ctx),
			engine.NodeLimit(s.config.MaxNodes),
		)
	}()

	code := ""
	if err != nil {
		code = rerrors.Classify(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, code)
	} else {
		span.SetAttributes(attribute.Int("raptor.bytes", len(html)))
	}
	s.metrics.observe(source, start, code)
	return html, err
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodySize))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.writeError(w, status, rerrors.Newf(rerrors.CategoryDocument, "read request body: %v", err))
		return
	}

	html, err := s.render(r.Context(), sourceBody, func() (*vtree.Document, error) {
		return vtree.Parse(data)
	}, s.pretty(r))
	if err != nil {
		s.writeRenderError(w, err)
		return
	}
	writeHTML(w, html)
}

func (s *Server) handleDoc(w http.ResponseWriter, r *http.Request) {
	path, err := s.docPath(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, rerrors.Newf(rerrors.CategoryDocument, "%v", err))
		return
	}

	html, err := s.render(r.Context(), sourceDocs, func() (*vtree.Document, error) {
		return vtree.Load(path)
	}, s.pretty(r))
	if err != nil {
		s.writeRenderError(w, err)
		return
	}
	writeHTML(w, html)
}

// docPath resolves a document name inside the docs directory. Names without
// an extension are tried with each document extension in turn.
func (s *Server) docPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("document %q not found", name)
	}

	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = candidates[:0]
		for _, ext := range documentExts {
			candidates = append(candidates, name+ext)
		}
	}
	for _, c := range candidates {
		if !isDocument(c) {
			continue
		}
		p := filepath.Join(s.config.DocsDir, c)
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return p, nil
		}
	}
	return "", fmt.Errorf("document %q not found", name)
}

// pretty reads the pretty query parameter, falling back to the configured
// default when it is absent or malformed.
func (s *Server) pretty(r *http.Request) bool {
	if v := r.URL.Query().Get("pretty"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return s.config.Render.Pretty
}

func writeHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

// writeRenderError answers with 422 for document and build errors, 503 for
// canceled renders and 500 for anything else.
func (s *Server) writeRenderError(w http.ResponseWriter, err error) {
	re := rerrors.FromError(err)
	status := http.StatusInternalServerError
	switch {
	case re.Code == rerrors.CodeRenderCanceled:
		status = http.StatusServiceUnavailable
	case re.Category == rerrors.CategoryBuild,
		re.Category == rerrors.CategoryDocument,
		re.Category == rerrors.CategoryRender:
		status = http.StatusUnprocessableEntity
	}
	s.writeError(w, status, re)
}

func (s *Server) writeError(w http.ResponseWriter, status int, re *rerrors.RaptorError) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", zap.Error(re))
	} else {
		s.logger.Debug("request rejected", zap.Int("status", status), zap.Error(re))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(re)
}
