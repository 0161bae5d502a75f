package io

import (
	"fmt"
	"io"
	"os"

	"github.com/nodedoc/nodedoc/pkg/graph"
	"github.com/nodedoc/nodedoc/pkg/persist"
	"github.com/nodedoc/nodedoc/pkg/wire"
)

// ImportInto merges a document into an existing graph and returns the
// newly created nodes in document order.
//
// Every node, port, and edge identifier in the incoming document is
// replaced with a freshly generated one before insertion, so an import
// can never collide with identifiers already present in the target -
// pasting a node twice produces two distinct nodes. All intra-document
// references are rewritten through the identifier map. Node positions
// are translated by offset so pasted nodes do not stack exactly atop
// the originals.
//
// Edge endpoints re-resolve the same way as in restore: by (remapped
// owning node ID, semantic port ID) against the target graph's port
// set. Edges that fail to resolve are dropped.
//
// The document is subject to the same schema version gate as restore.
func ImportInto(dst *graph.Graph, document string, offset graph.Vec2, opts persist.Options) ([]*graph.Node, error) {
	doc, err := wire.Unmarshal(document)
	if err != nil {
		return nil, err
	}
	if doc.SchemaVersion < persist.MinSchemaVersion {
		return nil, &persist.VersionError{Found: doc.SchemaVersion, Min: persist.MinSchemaVersion}
	}

	// Remap every identifier up front; edge endpoints are rewritten
	// through the map below. Port IDs get no map entries because no
	// document reference ever names a port by generated ID.
	idmap := make(map[string]string, len(doc.Nodes))
	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		fresh := graph.NewID()
		idmap[n.ID] = fresh
		n.ID = fresh
		n.Pos.X += offset.X
		n.Pos.Y += offset.Y
		for j := range n.Ports {
			n.Ports[j].ID = graph.NewID()
		}
	}

	// Rebuild nodes through the persister so type-provider port
	// reconstruction and user-data decoding behave exactly as in a
	// full restore.
	scratch, err := persist.Restore(&wire.Graph{
		SchemaVersion: doc.SchemaVersion,
		Topology:      dst.Topology().Tag(),
		Nodes:         doc.Nodes,
	}, opts)
	if err != nil {
		return nil, err
	}

	added := make([]*graph.Node, 0, len(doc.Nodes))
	for i := range doc.Nodes {
		n, ok := scratch.Node(doc.Nodes[i].ID)
		if !ok {
			continue
		}
		if err := dst.AddNode(n); err != nil {
			return nil, fmt.Errorf("import node %s: %w", n.ID, err)
		}
		added = append(added, n)
	}

	for i := range doc.Edges {
		we := &doc.Edges[i]
		from, okF := dst.PortBySemantic(idmap[we.FromNode], we.FromPort)
		to, okT := dst.PortBySemantic(idmap[we.ToNode], we.ToPort)
		if !okF || !okT {
			continue // dangling in the target graph's port set
		}
		e := &graph.Edge{ID: graph.NewID(), FromPort: from.ID, ToPort: to.ID}
		if we.Data != "" && opts.EdgeData != nil {
			if data, ok := opts.EdgeData.DecodeEdgeData(we.Data); ok {
				e.Data = data
			}
		}
		if err := dst.AddEdge(e); err != nil {
			return nil, fmt.Errorf("import edge %s: %w", e.ID, err)
		}
	}

	return added, nil
}

// Read parses document text from r and restores it into a new graph.
func Read(r io.Reader, opts persist.Options) (*graph.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	doc, err := wire.Unmarshal(string(data))
	if err != nil {
		return nil, err
	}
	return persist.Restore(doc, opts)
}

// ReadFile reads the document at path and restores it into a new graph.
func ReadFile(path string, opts persist.Options) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, opts)
}
