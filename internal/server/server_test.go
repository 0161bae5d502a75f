package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodedoc/nodedoc/pkg/persist"
	"github.com/nodedoc/nodedoc/pkg/store"
)

const validDoc = `{"id":"d1","schemaVersion":2,"settings":{"topology":"acyclic"},` +
	`"nodes":[{"id":"n1","type":"T","ports":[{"id":"p1","name":"out","direction":"out"}]},` +
	`{"id":"n2","type":"T","ports":[{"id":"p2","name":"in","direction":"in"}]}],` +
	`"edges":[{"id":"e1","fromNode":"n1","fromPort":"out","toNode":"n2","toPort":"in"}]}`

func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	ts := httptest.NewServer(New(st, nil, persist.Options{}).Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestPutGetDelete(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodPut, ts.URL+"/graphs/d1", validDoc)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/graphs/d1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Contains(t, readBody(t, resp), `"id":"d1"`)

	resp = do(t, http.MethodDelete, ts.URL+"/graphs/d1", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/graphs/d1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPutRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Malformed", `{"id":`},
		{"LegacyVersion", `{"id":"d","schemaVersion":1}`},
		{"DuplicateNodeID", `{"id":"d","schemaVersion":2,"nodes":[{"id":"n"},{"id":"n"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, st := newTestServer(t)

			resp := do(t, http.MethodPut, ts.URL+"/graphs/bad", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			assert.Contains(t, readBody(t, resp), `"error"`)

			// A rejected document never reaches the store.
			_, err := st.Get(context.Background(), "bad")
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestList(t *testing.T) {
	ts, st := newTestServer(t)
	require.NoError(t, st.Put(context.Background(), "b", validDoc))
	require.NoError(t, st.Put(context.Background(), "a", validDoc))

	resp := do(t, http.MethodGet, ts.URL+"/graphs", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `"graphs":["a","b"]`)
}

func TestCheckReportsDroppedEdges(t *testing.T) {
	dangling := `{"id":"d","schemaVersion":2,` +
		`"nodes":[{"id":"n1","type":"T","ports":[{"id":"p1","name":"out","direction":"out"}]}],` +
		`"edges":[{"id":"e1","fromNode":"n1","fromPort":"out","toNode":"ghost","toPort":"in"}]}`

	ts, st := newTestServer(t)
	require.NoError(t, st.Put(context.Background(), "d", dangling))

	resp := do(t, http.MethodPost, ts.URL+"/graphs/d/check", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, `"nodes":1`)
	assert.Contains(t, body, `"edges":0`)
	assert.Contains(t, body, `"droppedEdges":["e1"]`)
	assert.Contains(t, body, "ghost")
}

func TestCheckMissingDocument(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := do(t, http.MethodPost, ts.URL+"/graphs/nope/check", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
