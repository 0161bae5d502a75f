package graph

import (
	"errors"
	"testing"
)

// twoNodeGraph builds a graph with nodes a and b, each carrying one
// output and one input port with fixed IDs.
func twoNodeGraph(t *testing.T) *Graph {
	t.Helper()
	g := New("g1", TopologyAcyclic)
	a := &Node{ID: "a", Type: "T"}
	a.AddPort(&Port{ID: "a.out", Name: "out", Dir: Output})
	a.AddPort(&Port{ID: "a.in", Name: "in", Dir: Input})
	b := &Node{ID: "b", Type: "T"}
	b.AddPort(&Port{ID: "b.out", Name: "out", Dir: Output})
	b.AddPort(&Port{ID: "b.in", Name: "in", Dir: Input})
	for _, n := range []*Node{a, b} {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}
	return g
}

func TestAddNode(t *testing.T) {
	tests := []struct {
		name    string
		node    *Node
		wantErr error
	}{
		{"Valid", &Node{ID: "n1"}, nil},
		{"EmptyID", &Node{}, ErrInvalidID},
		{"DuplicateID", &Node{ID: "a"}, ErrDuplicateID},
		{
			"DuplicateSemantic",
			&Node{ID: "n2", Ports: []*Port{
				{Name: "x", Semantic: "x"},
				{Name: "y", Semantic: "x"},
			}},
			ErrDuplicateSemantic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := twoNodeGraph(t)
			err := g.AddNode(tt.node)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddNode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddNodeFillsPortDefaults(t *testing.T) {
	g := New("", TopologyAcyclic)
	if g.ID() == "" {
		t.Error("empty graph ID was not generated")
	}

	n := &Node{ID: "n1", Ports: []*Port{{Name: "value"}}}
	if err := g.AddNode(n); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	p := n.Ports[0]
	if p.ID == "" {
		t.Error("port ID was not generated")
	}
	if p.Semantic != "value" {
		t.Errorf("port semantic = %q, want name fallback %q", p.Semantic, "value")
	}
	if p.NodeID != "n1" {
		t.Errorf("port NodeID = %q, want n1", p.NodeID)
	}
}

func TestAddEdge(t *testing.T) {
	tests := []struct {
		name    string
		edge    *Edge
		wantErr error
	}{
		{"Valid", &Edge{FromPort: "a.out", ToPort: "b.in"}, nil},
		{"UnknownSource", &Edge{FromPort: "nope", ToPort: "b.in"}, ErrUnknownSourcePort},
		{"UnknownTarget", &Edge{FromPort: "a.out", ToPort: "nope"}, ErrUnknownTargetPort},
		{"EmptySource", &Edge{ToPort: "b.in"}, ErrUnknownSourcePort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := twoNodeGraph(t)
			err := g.AddEdge(tt.edge)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddEdge() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && tt.edge.ID == "" {
				t.Error("edge ID was not generated")
			}
		})
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	g := twoNodeGraph(t)
	e := &Edge{ID: "e1", FromPort: "a.out", ToPort: "b.in"}
	if err := g.AddEdge(e); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := g.AddGroup(&Group{ID: "grp", NodeIDs: []string{"a", "b"}}); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}
	if err := g.AddFrame(&Frame{ID: "f", NodeIDs: []string{"a", "b"}, RepNodeID: "a"}); err != nil {
		t.Fatalf("AddFrame: %v", err)
	}

	g.RemoveNode("a")

	if _, ok := g.Node("a"); ok {
		t.Error("node a still present")
	}
	if g.EdgeCount() != 0 {
		t.Errorf("edge count = %d, want 0 after cascade", g.EdgeCount())
	}
	grp, _ := g.Group("grp")
	if len(grp.NodeIDs) != 1 || grp.NodeIDs[0] != "b" {
		t.Errorf("group members = %v, want [b]", grp.NodeIDs)
	}
	f, _ := g.Frame("f")
	if f.RepNodeID != "" {
		t.Errorf("frame RepNodeID = %q, want cleared", f.RepNodeID)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate after removal: %v", err)
	}
}

func TestPortBySemantic(t *testing.T) {
	g := twoNodeGraph(t)

	p, ok := g.PortBySemantic("a", "out")
	if !ok {
		t.Fatal("PortBySemantic(a, out) not found")
	}
	if p.ID != "a.out" {
		t.Errorf("resolved port = %s, want a.out", p.ID)
	}

	if _, ok := g.PortBySemantic("a", "missing"); ok {
		t.Error("PortBySemantic resolved a missing semantic")
	}
	if _, ok := g.PortBySemantic("ghost", "out"); ok {
		t.Error("PortBySemantic resolved a missing node")
	}
	if _, ok := g.PortBySemantic("a", ""); ok {
		t.Error("PortBySemantic resolved an empty semantic")
	}
}

func TestValidateCycles(t *testing.T) {
	tests := []struct {
		name     string
		topology Topology
		edges    [][2]string // from port, to port
		wantErr  error
	}{
		{"AcyclicChain", TopologyAcyclic, [][2]string{{"a.out", "b.in"}}, nil},
		{"AcyclicCycle", TopologyAcyclic, [][2]string{{"a.out", "b.in"}, {"b.out", "a.in"}}, ErrGraphHasCycle},
		{"FreeCycle", TopologyFree, [][2]string{{"a.out", "b.in"}, {"b.out", "a.in"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := twoNodeGraph(t)
			g.topology = tt.topology
			for _, e := range tt.edges {
				if err := g.AddEdge(&Edge{FromPort: e[0], ToPort: e[1]}); err != nil {
					t.Fatalf("AddEdge(%v): %v", e, err)
				}
			}
			if err := g.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseTopology(t *testing.T) {
	tests := []struct {
		tag  string
		want Topology
	}{
		{"acyclic", TopologyAcyclic},
		{"free", TopologyFree},
		{"", TopologyAcyclic},
		{"bogus", TopologyAcyclic},
	}

	for _, tt := range tests {
		if got := ParseTopology(tt.tag); got != tt.want {
			t.Errorf("ParseTopology(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
	if TopologyFree.Tag() != "free" || TopologyAcyclic.Tag() != "acyclic" {
		t.Error("topology tags do not round-trip")
	}
}
