package io

import (
	"fmt"
	"io"
	"os"

	"github.com/nodedoc/nodedoc/pkg/graph"
	"github.com/nodedoc/nodedoc/pkg/persist"
	"github.com/nodedoc/nodedoc/pkg/wire"
)

// ExportAll captures the whole graph and renders it as document text.
func ExportAll(g *graph.Graph, opts persist.Options) string {
	return wire.Marshal(persist.Capture(g, opts))
}

// ExportSubset captures the graph reduced to the given node set: only
// nodes in the set are kept, and only edges with both endpoints inside
// the set. Annotations are not part of a subset document - this is the
// clipboard payload for copy-paste and sub-graph extraction.
func ExportSubset(g *graph.Graph, nodeIDs []string, opts persist.Options) string {
	keep := make(map[string]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		keep[id] = true
	}

	doc := persist.Capture(g, opts)

	nodes := doc.Nodes[:0]
	for _, n := range doc.Nodes {
		if keep[n.ID] {
			nodes = append(nodes, n)
		}
	}
	doc.Nodes = nodes

	edges := doc.Edges[:0]
	for _, e := range doc.Edges {
		if keep[e.FromNode] && keep[e.ToNode] {
			edges = append(edges, e)
		}
	}
	doc.Edges = edges

	doc.Groups = nil
	doc.Comments = nil
	doc.Frames = nil

	return wire.Marshal(doc)
}

// Write captures a graph and writes the document text to w.
func Write(g *graph.Graph, w io.Writer, opts persist.Options) error {
	if _, err := io.WriteString(w, ExportAll(g, opts)); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// WriteFile captures a graph and writes the document to a file at path.
func WriteFile(g *graph.Graph, path string, opts persist.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f, opts)
}
