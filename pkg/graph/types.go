package graph

import "github.com/google/uuid"

// Topology is the edge policy a graph enforces.
type Topology int

const (
	// TopologyAcyclic rejects documents whose edges form a directed cycle.
	// This is the default and the safe fallback for unknown policy tags.
	TopologyAcyclic Topology = iota
	// TopologyFree places no restriction on edge structure.
	TopologyFree
)

// Topology tags as they appear in persisted documents.
const (
	TopologyTagAcyclic = "acyclic"
	TopologyTagFree    = "free"
)

// ParseTopology maps a document tag to a Topology. Unrecognized tags
// fall back to TopologyAcyclic.
func ParseTopology(tag string) Topology {
	if tag == TopologyTagFree {
		return TopologyFree
	}
	return TopologyAcyclic
}

// Tag returns the document tag for the topology.
func (t Topology) Tag() string {
	if t == TopologyFree {
		return TopologyTagFree
	}
	return TopologyTagAcyclic
}

// Direction indicates which side of a node a port sits on.
type Direction int

const (
	// Input ports receive values.
	Input Direction = iota
	// Output ports produce values.
	Output
)

// PortKind distinguishes data-carrying ports from control-flow ports.
type PortKind int

const (
	// KindData ports carry typed values between nodes.
	KindData PortKind = iota
	// KindControl ports sequence execution.
	KindControl
)

// Capacity limits how many edges a port accepts.
type Capacity int

const (
	// CapSingle ports accept one edge.
	CapSingle Capacity = iota
	// CapMulti ports accept any number of edges.
	CapMulti
)

// Vec2 is a 2D position or size.
type Vec2 struct {
	X, Y float32
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Rect is an axis-aligned rectangle described by origin and size.
type Rect struct {
	Pos  Vec2
	Size Vec2
}

// Color is an RGBA color with float components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Node is a vertex in the graph. It owns its ports; everything else
// references the node by ID.
//
// Data is an opaque payload owned by the node. The graph core never
// inspects it; the persister round-trips it through a user-data codec
// when one is supplied.
type Node struct {
	ID         string
	Type       string // key into an external node-type registry
	Pos        Vec2
	Size       Vec2
	Collapsed  bool // display mode
	AdHocPorts bool // node defines its own ports instead of the registry's
	Data       any
	Ports      []*Port
}

// Port returns the port with the given ID, or nil.
func (n *Node) Port(id string) *Port {
	for _, p := range n.Ports {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PortBySemantic returns the port with the given semantic ID, or nil.
// Semantic IDs are unique within a node when present.
func (n *Node) PortBySemantic(semantic string) *Port {
	if semantic == "" {
		return nil
	}
	for _, p := range n.Ports {
		if p.Semantic == semantic {
			return p
		}
	}
	return nil
}

// AddPort appends a port to the node and fills in the back-reference
// and a generated ID when missing. If the port has no semantic ID its
// name is used, keeping edges re-bindable across serializations.
func (n *Node) AddPort(p *Port) *Port {
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.Semantic == "" {
		p.Semantic = p.Name
	}
	p.NodeID = n.ID
	n.Ports = append(n.Ports, p)
	return p
}

// Port is a connection point on a node.
//
// ID is regenerated freely across serializations; Semantic is the
// stable logical name edges bind to. NodeID is a back-reference for
// index lookups, never an owning pointer - a port does not outlive
// its node.
type Port struct {
	ID       string
	NodeID   string
	Name     string
	Semantic string
	Dir      Direction
	Kind     PortKind
	DataType string // free-form type tag, interpreted by the host
	Capacity Capacity
	Order    int
}

// Edge connects two ports, identified by their generated IDs.
// Data is an opaque payload, handled like node data.
type Edge struct {
	ID       string
	FromPort string
	ToPort   string
	Data     any
}

// Group is a named rectangular region enclosing a set of nodes.
type Group struct {
	ID      string
	Label   string
	Bounds  Rect
	Color   Color
	NodeIDs []string
}

// Comment is a free-floating text annotation.
type Comment struct {
	ID     string
	Text   string
	Bounds Rect
	Color  Color
}

// Frame is a sub-graph frame: a region that presents a set of nodes as
// one collapsible unit. AssetRef is set when the frame was instantiated
// from a reusable template asset.
type Frame struct {
	ID        string
	Title     string
	Bounds    Rect
	Color     Color
	NodeIDs   []string
	RepNodeID string // node shown when the frame is collapsed
	Collapsed bool
	AssetRef  string
}

// PortSpec is one default port in a node-type definition.
type PortSpec struct {
	Name     string
	Dir      Direction
	Kind     PortKind
	DataType string
	Capacity Capacity
	Order    int
}

// NodeType is an external type definition: the fixed ordered set of
// ports a node of this type carries by default.
type NodeType struct {
	ID    string
	Ports []PortSpec
}

// TypeProvider resolves a node's type identifier to its definition.
// A false return means the type is unknown and callers must fall back
// to whatever port data the node itself carries.
type TypeProvider interface {
	NodeType(typeID string) (*NodeType, bool)
}

// NewID returns a fresh unique identifier for any graph entity.
func NewID() string { return uuid.NewString() }
