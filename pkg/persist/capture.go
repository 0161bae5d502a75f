package persist

import (
	"slices"
	"strings"

	"github.com/nodedoc/nodedoc/pkg/graph"
	"github.com/nodedoc/nodedoc/pkg/wire"
)

// Capture snapshots a graph into a fresh document record stamped with
// the current schema version. Entities are sorted by ID so output is
// deterministic regardless of map iteration order.
//
// When a type provider knows a node's type and the node does not allow
// ad-hoc ports, the node's port list is omitted from the document: the
// ports are fully determined by the type definition and are rebuilt on
// restore. Edge endpoints are written as (owning node ID, semantic
// port ID) pairs so they survive port ID regeneration.
func Capture(g *graph.Graph, opts Options) *wire.Graph {
	types := opts.Types

	doc := &wire.Graph{
		ID:            g.ID(),
		SchemaVersion: SchemaVersion,
		Topology:      g.Topology().Tag(),
	}

	nodes := g.Nodes()
	slices.SortFunc(nodes, func(a, b *graph.Node) int { return strings.Compare(a.ID, b.ID) })
	doc.Nodes = make([]wire.Node, len(nodes))
	for i, n := range nodes {
		doc.Nodes[i] = captureNode(n, types, opts.NodeData)
	}

	edges := g.Edges()
	slices.SortFunc(edges, func(a, b *graph.Edge) int { return strings.Compare(a.ID, b.ID) })
	doc.Edges = make([]wire.Edge, len(edges))
	for i, e := range edges {
		doc.Edges[i] = captureEdge(g, e, opts.EdgeData)
	}

	groups := g.Groups()
	slices.SortFunc(groups, func(a, b *graph.Group) int { return strings.Compare(a.ID, b.ID) })
	doc.Groups = make([]wire.Group, len(groups))
	for i, grp := range groups {
		doc.Groups[i] = wire.Group{
			ID:      grp.ID,
			Label:   grp.Label,
			Pos:     vec2Out(grp.Bounds.Pos),
			Size:    vec2Out(grp.Bounds.Size),
			Color:   colorOut(grp.Color),
			NodeIDs: slices.Clone(grp.NodeIDs),
		}
	}

	comments := g.Comments()
	slices.SortFunc(comments, func(a, b *graph.Comment) int { return strings.Compare(a.ID, b.ID) })
	doc.Comments = make([]wire.Comment, len(comments))
	for i, c := range comments {
		doc.Comments[i] = wire.Comment{
			ID:    c.ID,
			Text:  c.Text,
			Pos:   vec2Out(c.Bounds.Pos),
			Size:  vec2Out(c.Bounds.Size),
			Color: colorOut(c.Color),
		}
	}

	frames := g.Frames()
	slices.SortFunc(frames, func(a, b *graph.Frame) int { return strings.Compare(a.ID, b.ID) })
	doc.Frames = make([]wire.Frame, len(frames))
	for i, f := range frames {
		doc.Frames[i] = wire.Frame{
			ID:        f.ID,
			Title:     f.Title,
			Pos:       vec2Out(f.Bounds.Pos),
			Size:      vec2Out(f.Bounds.Size),
			Color:     colorOut(f.Color),
			NodeIDs:   slices.Clone(f.NodeIDs),
			RepNode:   f.RepNodeID,
			Collapsed: f.Collapsed,
			AssetRef:  f.AssetRef,
		}
	}

	return doc
}

func captureNode(n *graph.Node, types graph.TypeProvider, dataCodec NodeDataCodec) wire.Node {
	wn := wire.Node{
		ID:         n.ID,
		Type:       n.Type,
		Pos:        vec2Out(n.Pos),
		Size:       vec2Out(n.Size),
		Collapsed:  n.Collapsed,
		AdHocPorts: n.AdHocPorts,
	}

	// Port omission: a registry-known node without ad-hoc ports carries
	// no port data - the type definition is the source of truth.
	omit := false
	if types != nil && !n.AdHocPorts {
		_, omit = types.NodeType(n.Type)
	}
	if !omit {
		wn.Ports = make([]wire.Port, len(n.Ports))
		for i, p := range n.Ports {
			wn.Ports[i] = wire.Port{
				ID:       p.ID,
				Name:     p.Name,
				Semantic: p.Semantic,
				Dir:      dirTag(p.Dir),
				Kind:     kindTag(p.Kind),
				DataType: p.DataType,
				Capacity: capacityTag(p.Capacity),
				Order:    p.Order,
			}
		}
	}

	if n.Data != nil && dataCodec != nil {
		if text, ok := dataCodec.EncodeNodeData(n.Type, n.Data); ok {
			wn.Data = text
		}
	}
	return wn
}

func captureEdge(g *graph.Graph, e *graph.Edge, dataCodec EdgeDataCodec) wire.Edge {
	we := wire.Edge{ID: e.ID}
	if n, p, ok := g.FindPort(e.FromPort); ok {
		we.FromNode, we.FromPort = n.ID, p.Semantic
	}
	if n, p, ok := g.FindPort(e.ToPort); ok {
		we.ToNode, we.ToPort = n.ID, p.Semantic
	}
	if e.Data != nil && dataCodec != nil {
		if text, ok := dataCodec.EncodeEdgeData(e.Data); ok {
			we.Data = text
		}
	}
	return we
}
