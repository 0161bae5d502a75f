// Package store persists graph documents in pluggable backends.
//
// A document is opaque text produced by the io/persist packages; the
// store never parses it. Backends:
//   - memory: in-process map for development and tests
//   - file: one file per document in a local directory, for CLI use
//   - mongo: a MongoDB collection, for server deployments
//   - redis: a Redis keyspace, for shared short-lived storage
//
// All backends implement [Store]. Missing documents are reported with
// [ErrNotFound]; callers use errors.Is to distinguish absence from
// backend failure.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned by Get and Delete when no document with
	// the given ID exists.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidID is returned when a document ID cannot be used as a
	// storage key (empty, or containing path separators).
	ErrInvalidID = errors.New("invalid document ID")
)

// Store is the interface for document storage backends.
type Store interface {
	// Get retrieves the document with the given ID.
	Get(ctx context.Context, id string) (string, error)

	// Put stores a document under the given ID, replacing any existing
	// one.
	Put(ctx context.Context, id, document string) error

	// Delete removes the document with the given ID.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored documents in sorted order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources. The store is unusable after.
	Close() error
}

// MemoryStore keeps documents in process memory. Safe for concurrent
// use; contents are lost when the process exits.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]string)}
}

// Get retrieves a document.
func (s *MemoryStore) Get(ctx context.Context, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return "", ErrNotFound
	}
	return doc, nil
}

// Put stores a document.
func (s *MemoryStore) Put(ctx context.Context, id, document string) error {
	if id == "" {
		return ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = document
	return nil
}

// Delete removes a document.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

// List returns all document IDs in sorted order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
