package persist

import (
	"errors"
	"strings"
	"testing"

	"github.com/nodedoc/nodedoc/pkg/graph"
	"github.com/nodedoc/nodedoc/pkg/wire"
)

// registry is a test type provider backed by a map.
type registry map[string]*graph.NodeType

func (r registry) NodeType(typeID string) (*graph.NodeType, bool) {
	nt, ok := r[typeID]
	return nt, ok
}

// mathRegistry knows Math.Add: inputs a and b, output sum.
func mathRegistry() registry {
	return registry{
		"Math.Add": {
			ID: "Math.Add",
			Ports: []graph.PortSpec{
				{Name: "a", Dir: graph.Input, Kind: graph.KindData, DataType: "float", Capacity: graph.CapSingle},
				{Name: "b", Dir: graph.Input, Kind: graph.KindData, DataType: "float", Capacity: graph.CapSingle, Order: 1},
				{Name: "sum", Dir: graph.Output, Kind: graph.KindData, DataType: "float", Capacity: graph.CapMulti, Order: 2},
			},
		},
	}
}

// addChain builds two Math.Add nodes with the first sum feeding the
// second node's a input.
func addChain(t *testing.T, types graph.TypeProvider) *graph.Graph {
	t.Helper()
	g := graph.New("math-doc", graph.TopologyAcyclic)
	g.SetTypes(types)

	nt, _ := types.NodeType("Math.Add")
	for _, id := range []string{"add1", "add2"} {
		n := &graph.Node{ID: id, Type: "Math.Add", Pos: graph.Vec2{X: 10, Y: 20}}
		for _, spec := range nt.Ports {
			n.AddPort(&graph.Port{
				Name: spec.Name, Dir: spec.Dir, Kind: spec.Kind,
				DataType: spec.DataType, Capacity: spec.Capacity, Order: spec.Order,
			})
		}
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}

	from, _ := g.PortBySemantic("add1", "sum")
	to, _ := g.PortBySemantic("add2", "a")
	if err := g.AddEdge(&graph.Edge{ID: "e1", FromPort: from.ID, ToPort: to.ID}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	return g
}

func TestCaptureOmitsRegistryKnownPorts(t *testing.T) {
	types := mathRegistry()
	g := addChain(t, types)

	doc := Capture(g, Options{Types: types})

	if doc.SchemaVersion != SchemaVersion {
		t.Errorf("schema version = %d, want %d", doc.SchemaVersion, SchemaVersion)
	}
	for _, wn := range doc.Nodes {
		if len(wn.Ports) != 0 {
			t.Errorf("node %s: ports written for registry-known type", wn.ID)
		}
	}

	e := doc.Edges[0]
	if e.FromNode != "add1" || e.FromPort != "sum" || e.ToNode != "add2" || e.ToPort != "a" {
		t.Errorf("edge endpoints = %s.%s -> %s.%s, want add1.sum -> add2.a",
			e.FromNode, e.FromPort, e.ToNode, e.ToPort)
	}
}

func TestCaptureKeepsAdHocPorts(t *testing.T) {
	types := mathRegistry()
	g := graph.New("d", graph.TopologyAcyclic)
	n := &graph.Node{ID: "n1", Type: "Math.Add", AdHocPorts: true}
	n.AddPort(&graph.Port{Name: "custom", Dir: graph.Input})
	if err := g.AddNode(n); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	doc := Capture(g, Options{Types: types})
	if len(doc.Nodes[0].Ports) != 1 || doc.Nodes[0].Ports[0].Name != "custom" {
		t.Errorf("ad-hoc ports not written verbatim: %+v", doc.Nodes[0].Ports)
	}
}

func TestRoundTripRebuildsPortsAndEdges(t *testing.T) {
	types := mathRegistry()
	g := addChain(t, types)
	opts := Options{Types: types}

	got, err := Restore(Capture(g, opts), opts)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if got.ID() != g.ID() {
		t.Errorf("graph ID = %q, want %q", got.ID(), g.ID())
	}
	if got.NodeCount() != 2 || got.EdgeCount() != 1 {
		t.Fatalf("counts = %d nodes, %d edges", got.NodeCount(), got.EdgeCount())
	}

	n, _ := got.Node("add1")
	if len(n.Ports) != 3 {
		t.Fatalf("add1 has %d ports, want 3 from the type definition", len(n.Ports))
	}
	for i, semantic := range []string{"a", "b", "sum"} {
		if n.Ports[i].Semantic != semantic {
			t.Errorf("port[%d] semantic = %q, want %q", i, n.Ports[i].Semantic, semantic)
		}
		if n.Ports[i].ID == "" {
			t.Errorf("port[%d] got no generated ID", i)
		}
	}

	// Port IDs are regenerated on restore; the edge must still bind.
	orig, _ := g.PortBySemantic("add1", "sum")
	fresh, _ := got.PortBySemantic("add1", "sum")
	if orig.ID == fresh.ID {
		t.Error("restored port kept the original generated ID")
	}
	e := got.Edges()[0]
	from, _, okF := got.FindPort(e.FromPort)
	to, _, okT := got.FindPort(e.ToPort)
	if !okF || !okT || from.ID != "add1" || to.ID != "add2" {
		t.Errorf("restored edge does not connect add1 to add2")
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestGraphAttachedRegistryDoesNotOmitPorts(t *testing.T) {
	// The graph carries its own registry via SetTypes, but the caller
	// passes no provider. Restore can only see Options.Types, so
	// capture must write the ports out rather than omit them.
	g := addChain(t, mathRegistry())

	doc := Capture(g, Options{})
	for _, wn := range doc.Nodes {
		if len(wn.Ports) != 3 {
			t.Errorf("node %s: %d ports written, want 3", wn.ID, len(wn.Ports))
		}
	}

	got, err := Restore(doc, Options{})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	n, _ := got.Node("add1")
	if len(n.Ports) != 3 {
		t.Errorf("add1 restored with %d ports, want 3", len(n.Ports))
	}
	if got.EdgeCount() != 1 {
		t.Errorf("edge count = %d, want 1", got.EdgeCount())
	}
}

func TestRoundTripWithoutProvider(t *testing.T) {
	g := graph.New("d", graph.TopologyFree)
	n := &graph.Node{ID: "n1", Type: "Unknown.Type", Size: graph.Vec2{X: 80, Y: 40}}
	n.AddPort(&graph.Port{Name: "out", Semantic: "out", Dir: graph.Output, Kind: graph.KindControl, Capacity: graph.CapMulti, Order: 2})
	if err := g.AddNode(n); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := g.AddComment(&graph.Comment{ID: "c1", Text: "hi", Bounds: graph.Rect{Pos: graph.Vec2{X: 1, Y: 2}}}); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	doc := Capture(g, Options{})
	if len(doc.Nodes[0].Ports) != 1 {
		t.Fatal("ports dropped without a provider")
	}

	got, err := Restore(doc, Options{})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got.Topology() != graph.TopologyFree {
		t.Errorf("topology = %v, want free", got.Topology())
	}
	rn, _ := got.Node("n1")
	p := rn.Ports[0]
	if p.Name != "out" || p.Dir != graph.Output || p.Kind != graph.KindControl ||
		p.Capacity != graph.CapMulti || p.Order != 2 {
		t.Errorf("port not restored verbatim: %+v", p)
	}
	c, ok := got.Comment("c1")
	if !ok || c.Text != "hi" || c.Bounds.Pos.X != 1 {
		t.Errorf("comment not restored: %+v", c)
	}
}

func TestRestoreVersionGate(t *testing.T) {
	tests := []struct {
		name    string
		version int
		wantErr bool
	}{
		{"Legacy", 1, true},
		{"Zero", 0, true},
		{"Current", 2, false},
		{"Newer", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &wire.Graph{ID: "d", SchemaVersion: tt.version}
			g, err := Restore(doc, Options{})
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Restore: %v", err)
				}
				return
			}
			if g != nil {
				t.Error("graph constructed despite version error")
			}
			var verr *VersionError
			if !errors.As(err, &verr) {
				t.Fatalf("error type = %T, want *VersionError", err)
			}
			if verr.Found != tt.version || verr.Min != MinSchemaVersion {
				t.Errorf("VersionError = %+v", verr)
			}
		})
	}
}

func TestRestoreDropsDanglingEdges(t *testing.T) {
	doc := &wire.Graph{
		ID:            "d",
		SchemaVersion: 2,
		Nodes: []wire.Node{
			{ID: "n1", Type: "T", Ports: []wire.Port{{ID: "p1", Name: "out", Dir: wire.DirOut}}},
			{ID: "n2", Type: "T", Ports: []wire.Port{{ID: "p2", Name: "in", Dir: wire.DirIn}}},
		},
		Edges: []wire.Edge{
			{ID: "ok", FromNode: "n1", FromPort: "out", ToNode: "n2", ToPort: "in"},
			{ID: "badNode", FromNode: "ghost", FromPort: "out", ToNode: "n2", ToPort: "in"},
			{ID: "badPort", FromNode: "n1", FromPort: "out", ToNode: "n2", ToPort: "missing"},
		},
	}

	silent, err := Restore(doc, Options{})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	loud, diags, err := RestoreWithDiagnostics(doc, Options{})
	if err != nil {
		t.Fatalf("RestoreWithDiagnostics: %v", err)
	}

	// Both paths build the identical graph.
	for _, g := range []*graph.Graph{silent, loud} {
		if g.EdgeCount() != 1 {
			t.Errorf("edge count = %d, want 1", g.EdgeCount())
		}
		if _, ok := g.Edge("ok"); !ok {
			t.Error("resolvable edge was dropped")
		}
	}

	if len(diags.DroppedEdges) != 2 {
		t.Fatalf("dropped = %v, want badNode and badPort", diags.DroppedEdges)
	}
	for i, id := range []string{"badNode", "badPort"} {
		if diags.DroppedEdges[i] != id {
			t.Errorf("dropped[%d] = %q, want %q", i, diags.DroppedEdges[i], id)
		}
		if !strings.Contains(diags.Warnings[i], id) {
			t.Errorf("warning %q does not name edge %q", diags.Warnings[i], id)
		}
	}
}

// jsonDataCodec is a test codec storing node payloads as raw strings.
type jsonDataCodec struct{}

func (jsonDataCodec) EncodeNodeData(nodeType string, data any) (string, bool) {
	s, ok := data.(string)
	return s, ok
}

func (jsonDataCodec) DecodeNodeData(nodeType, text string) (any, bool) {
	return text, true
}

func TestUserDataRoundTrip(t *testing.T) {
	g := graph.New("d", graph.TopologyAcyclic)
	if err := g.AddNode(&graph.Node{ID: "n1", Type: "T", Data: "payload"}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := g.AddNode(&graph.Node{ID: "n2", Type: "T", Data: 42}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	opts := Options{NodeData: jsonDataCodec{}}
	doc := Capture(g, opts)

	var n1, n2 wire.Node
	for _, wn := range doc.Nodes {
		switch wn.ID {
		case "n1":
			n1 = wn
		case "n2":
			n2 = wn
		}
	}
	if n1.Data != "payload" {
		t.Errorf("n1 data = %q", n1.Data)
	}
	if n2.Data != "" {
		t.Errorf("unhandled payload was not dropped: %q", n2.Data)
	}

	got, err := Restore(doc, opts)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	rn, _ := got.Node("n1")
	if rn.Data != "payload" {
		t.Errorf("restored data = %v", rn.Data)
	}

	// Without a codec the payload is dropped, never guessed at.
	bare, err := Restore(doc, Options{})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	bn, _ := bare.Node("n1")
	if bn.Data != nil {
		t.Errorf("data decoded without a codec: %v", bn.Data)
	}
}

func TestCaptureIsDeterministic(t *testing.T) {
	types := mathRegistry()
	g := addChain(t, types)
	if err := g.AddGroup(&graph.Group{ID: "g2", NodeIDs: []string{"add2"}}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddGroup(&graph.Group{ID: "g1", NodeIDs: []string{"add1"}}); err != nil {
		t.Fatal(err)
	}
	opts := Options{Types: types}

	first := wire.Marshal(Capture(g, opts))
	for i := 0; i < 10; i++ {
		if got := wire.Marshal(Capture(g, opts)); got != first {
			t.Fatalf("capture %d differs:\n%s\n%s", i, got, first)
		}
	}
	if !strings.Contains(first, `"groups":[{"id":"g1"`) {
		t.Errorf("groups not sorted by ID: %s", first)
	}
}
