// Package server exposes a graph-document store over HTTP.
//
// The service is a thin shell around a store.Store: documents go in
// and out as the persistence format's text, and writes are validated
// through the persister before they are accepted. Reconstruction
// diagnostics (dropped edges) are available per document via the
// check endpoint.
package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/nodedoc/nodedoc/pkg/codec"
	"github.com/nodedoc/nodedoc/pkg/persist"
	"github.com/nodedoc/nodedoc/pkg/store"
	"github.com/nodedoc/nodedoc/pkg/wire"
)

// maxDocumentBytes caps PUT bodies. Graph documents are editor
// artifacts, not bulk data.
const maxDocumentBytes = 16 << 20

// Server serves graph documents from a backing store.
type Server struct {
	store  store.Store
	logger *log.Logger
	opts   persist.Options
}

// New creates a server over the given store. opts configures document
// validation; the zero value validates without a type provider or
// user-data codec.
func New(st store.Store, logger *log.Logger, opts persist.Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: st, logger: logger, opts: opts}
}

// Handler returns the HTTP handler for the document API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLog)

	r.Get("/graphs", s.handleList)
	r.Get("/graphs/{id}", s.handleGet)
	r.Put("/graphs/{id}", s.handlePut)
	r.Delete("/graphs/{id}", s.handleDelete)
	r.Post("/graphs/{id}/check", s.handleCheck)

	return r
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "list documents: %v", err)
		return
	}
	e := codec.NewEncoder()
	e.Root(func() {
		e.List("graphs", len(ids), func(i int) { e.ItemStr(ids[i]) })
	})
	s.reply(w, http.StatusOK, e.String())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.fail(w, http.StatusNotFound, "no document %q", id)
		return
	}
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "get document: %v", err)
		return
	}
	s.reply(w, http.StatusOK, doc)
}

// handlePut validates the incoming document through the persister
// before storing it: a document the restore path rejects never enters
// the store.
func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentBytes))
	if err != nil {
		s.fail(w, http.StatusBadRequest, "read body: %v", err)
		return
	}

	text := string(body)
	doc, err := wire.Unmarshal(text)
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, "malformed document: %v", err)
		return
	}
	if _, err := persist.Restore(doc, s.opts); err != nil {
		s.fail(w, http.StatusUnprocessableEntity, "invalid document: %v", err)
		return
	}

	if err := s.store.Put(r.Context(), id, text); err != nil {
		s.fail(w, http.StatusInternalServerError, "store document: %v", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.fail(w, http.StatusNotFound, "no document %q", id)
		return
	}
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "delete document: %v", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCheck restores the stored document with diagnostics and
// reports dropped edges without modifying anything.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	text, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.fail(w, http.StatusNotFound, "no document %q", id)
		return
	}
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "get document: %v", err)
		return
	}

	doc, err := wire.Unmarshal(text)
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, "malformed document: %v", err)
		return
	}
	g, diags, err := persist.RestoreWithDiagnostics(doc, s.opts)
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, "invalid document: %v", err)
		return
	}

	e := codec.NewEncoder()
	e.Root(func() {
		e.Int("nodes", g.NodeCount())
		e.Int("edges", g.EdgeCount())
		e.List("droppedEdges", len(diags.DroppedEdges), func(i int) {
			e.ItemStr(diags.DroppedEdges[i])
		})
		e.List("warnings", len(diags.Warnings), func(i int) {
			e.ItemStr(diags.Warnings[i])
		})
	})
	s.reply(w, http.StatusOK, e.String())
}

func (s *Server) reply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintln(w, body)
}

func (s *Server) fail(w http.ResponseWriter, status int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if status >= http.StatusInternalServerError {
		s.logger.Error(msg)
	}
	e := codec.NewEncoder()
	e.Root(func() { e.Str("error", msg) })
	s.reply(w, status, e.String())
}
