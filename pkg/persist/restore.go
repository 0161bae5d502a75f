package persist

import (
	"fmt"
	"slices"

	"github.com/nodedoc/nodedoc/pkg/graph"
	"github.com/nodedoc/nodedoc/pkg/wire"
)

// Diagnostics collects restore observations that are not errors.
// A dangling edge in a document - hand-edited, partially corrupted, or
// referencing a node whose type definition changed - is an expected
// condition, handled by dropping the edge. Diagnostics records each
// drop without changing what gets built.
type Diagnostics struct {
	// DroppedEdges holds the IDs of edges whose endpoints could not be
	// resolved against the reconstructed graph.
	DroppedEdges []string

	// Warnings holds one human-readable line per dropped edge, naming
	// the edge and both unresolved endpoints.
	Warnings []string
}

// diagSink receives drop events during reconstruction. The silent and
// diagnostic restore paths share one walk; only the sink differs.
type diagSink interface {
	droppedEdge(id, fromNode, fromPort, toNode, toPort string)
}

type nopSink struct{}

func (nopSink) droppedEdge(id, fromNode, fromPort, toNode, toPort string) {}

func (d *Diagnostics) droppedEdge(id, fromNode, fromPort, toNode, toPort string) {
	d.DroppedEdges = append(d.DroppedEdges, id)
	d.Warnings = append(d.Warnings,
		fmt.Sprintf("dropped edge %q: cannot resolve %s.%s -> %s.%s",
			id, fromNode, fromPort, toNode, toPort))
}

// Restore rebuilds a graph from a document. It fails with a
// [*VersionError] when the document's schema version is below
// [MinSchemaVersion]; no graph is constructed in that case.
//
// Edges whose endpoints cannot be resolved are dropped silently. Use
// [RestoreWithDiagnostics] to observe the drops.
func Restore(doc *wire.Graph, opts Options) (*graph.Graph, error) {
	return restoreInto(doc, opts, nopSink{})
}

// RestoreWithDiagnostics performs the identical reconstruction as
// [Restore] and additionally reports every dropped edge. The returned
// graph is the same for the same input; diagnostics is strictly
// additive observability.
func RestoreWithDiagnostics(doc *wire.Graph, opts Options) (*graph.Graph, *Diagnostics, error) {
	diags := &Diagnostics{}
	g, err := restoreInto(doc, opts, diags)
	if err != nil {
		return nil, nil, err
	}
	return g, diags, nil
}

// restoreInto is the one reconstruction routine both entry points run.
func restoreInto(doc *wire.Graph, opts Options, sink diagSink) (*graph.Graph, error) {
	if doc.SchemaVersion < MinSchemaVersion {
		return nil, &VersionError{Found: doc.SchemaVersion, Min: MinSchemaVersion}
	}

	g := graph.New(doc.ID, graph.ParseTopology(doc.Topology))
	g.SetTypes(opts.Types)

	for i := range doc.Nodes {
		n, err := restoreNode(&doc.Nodes[i], opts)
		if err != nil {
			return nil, err
		}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}

	for i := range doc.Edges {
		if err := restoreEdge(g, &doc.Edges[i], opts, sink); err != nil {
			return nil, err
		}
	}

	for i := range doc.Groups {
		wg := &doc.Groups[i]
		grp := &graph.Group{
			ID:      wg.ID,
			Label:   wg.Label,
			Bounds:  rectIn(wg.Pos, wg.Size),
			Color:   colorIn(wg.Color),
			NodeIDs: slices.Clone(wg.NodeIDs),
		}
		if err := g.AddGroup(grp); err != nil {
			return nil, fmt.Errorf("group %s: %w", wg.ID, err)
		}
	}

	for i := range doc.Comments {
		wc := &doc.Comments[i]
		c := &graph.Comment{
			ID:     wc.ID,
			Text:   wc.Text,
			Bounds: rectIn(wc.Pos, wc.Size),
			Color:  colorIn(wc.Color),
		}
		if err := g.AddComment(c); err != nil {
			return nil, fmt.Errorf("comment %s: %w", wc.ID, err)
		}
	}

	for i := range doc.Frames {
		wf := &doc.Frames[i]
		f := &graph.Frame{
			ID:        wf.ID,
			Title:     wf.Title,
			Bounds:    rectIn(wf.Pos, wf.Size),
			Color:     colorIn(wf.Color),
			NodeIDs:   slices.Clone(wf.NodeIDs),
			RepNodeID: wf.RepNode,
			Collapsed: wf.Collapsed,
			AssetRef:  wf.AssetRef,
		}
		if err := g.AddFrame(f); err != nil {
			return nil, fmt.Errorf("frame %s: %w", wf.ID, err)
		}
	}

	return g, nil
}

// restoreNode rebuilds one node. Registry-known types get their ports
// from the type definition; any port data in the document is ignored
// for them. Everything else rebuilds ports verbatim, with the semantic
// ID defaulting to the display name when none was stored.
func restoreNode(wn *wire.Node, opts Options) (*graph.Node, error) {
	n := &graph.Node{
		ID:         wn.ID,
		Type:       wn.Type,
		Pos:        vec2In(wn.Pos),
		Size:       vec2In(wn.Size),
		Collapsed:  wn.Collapsed,
		AdHocPorts: wn.AdHocPorts,
	}

	if nt, ok := typeDef(opts.Types, wn); ok {
		n.Ports = portsFromType(nt)
	} else {
		n.Ports = make([]*graph.Port, len(wn.Ports))
		for i := range wn.Ports {
			wp := &wn.Ports[i]
			n.Ports[i] = &graph.Port{
				ID:       wp.ID,
				Name:     wp.Name,
				Semantic: wp.Semantic, // AddNode defaults this to Name
				Dir:      dirFromTag(wp.Dir),
				Kind:     kindFromTag(wp.Kind),
				DataType: wp.DataType,
				Capacity: capacityFromTag(wp.Capacity),
				Order:    wp.Order,
			}
		}
	}

	if wn.Data != "" && opts.NodeData != nil {
		if data, ok := opts.NodeData.DecodeNodeData(wn.Type, wn.Data); ok {
			n.Data = data
		}
	}
	return n, nil
}

func typeDef(types graph.TypeProvider, wn *wire.Node) (*graph.NodeType, bool) {
	if types == nil || wn.AdHocPorts {
		return nil, false
	}
	return types.NodeType(wn.Type)
}

func portsFromType(nt *graph.NodeType) []*graph.Port {
	ports := make([]*graph.Port, len(nt.Ports))
	for i, spec := range nt.Ports {
		ports[i] = &graph.Port{
			ID:       graph.NewID(),
			Name:     spec.Name,
			Dir:      spec.Dir,
			Kind:     spec.Kind,
			DataType: spec.DataType,
			Capacity: spec.Capacity,
			Order:    spec.Order,
		}
	}
	return ports
}

// restoreEdge re-binds one edge by (owning node ID, semantic port ID)
// lookup. An edge that fails to resolve on either side is dropped: it
// is never added to the graph and never surfaced as an error.
func restoreEdge(g *graph.Graph, we *wire.Edge, opts Options, sink diagSink) error {
	from, okF := g.PortBySemantic(we.FromNode, we.FromPort)
	to, okT := g.PortBySemantic(we.ToNode, we.ToPort)
	if !okF || !okT {
		sink.droppedEdge(we.ID, we.FromNode, we.FromPort, we.ToNode, we.ToPort)
		return nil
	}

	e := &graph.Edge{ID: we.ID, FromPort: from.ID, ToPort: to.ID}
	if we.Data != "" && opts.EdgeData != nil {
		if data, ok := opts.EdgeData.DecodeEdgeData(we.Data); ok {
			e.Data = data
		}
	}
	if err := g.AddEdge(e); err != nil {
		return fmt.Errorf("edge %s: %w", we.ID, err)
	}
	return nil
}
