package graph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidID is returned when an entity is added with an empty
	// identifier. Use NewID or the New* helpers to generate one.
	ErrInvalidID = errors.New("entity ID must not be empty")

	// ErrDuplicateID is returned when an entity is added with an ID
	// already present in its collection. IDs are unique per collection.
	ErrDuplicateID = errors.New("duplicate entity ID")

	// ErrDuplicateSemantic is returned by [Graph.AddNode] when two ports
	// of the same node carry the same semantic identifier.
	ErrDuplicateSemantic = errors.New("duplicate semantic port ID")

	// ErrUnknownNode is returned when an operation references a node
	// that is not part of the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownSourcePort is returned by [Graph.AddEdge] when the edge's
	// source port does not resolve to a port owned by any node.
	ErrUnknownSourcePort = errors.New("unknown source port")

	// ErrUnknownTargetPort is returned by [Graph.AddEdge] when the edge's
	// target port does not resolve to a port owned by any node.
	ErrUnknownTargetPort = errors.New("unknown target port")

	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when a
	// retained edge no longer resolves. This indicates graph corruption;
	// well-behaved mutation paths never leave a dangling edge behind.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrGraphHasCycle is returned by [Graph.Validate] for graphs with
	// acyclic topology whose edges form a directed cycle.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Graph is the mutable in-memory aggregate edited by a host tool.
// It owns nodes (which own their ports), edges, groups, comments, and
// sub-graph frames, all keyed by unique identifiers.
//
// The zero value is not usable - use [New]. Graph is not safe for
// concurrent use without external synchronization; in particular the
// persister must not run while another goroutine mutates the graph.
type Graph struct {
	id       string
	topology Topology
	types    TypeProvider // optional registry reference, may be nil

	nodes    map[string]*Node
	edges    map[string]*Edge
	groups   map[string]*Group
	comments map[string]*Comment
	frames   map[string]*Frame
}

// New creates an empty graph. An empty id is replaced with a generated
// one.
func New(id string, topology Topology) *Graph {
	if id == "" {
		id = NewID()
	}
	return &Graph{
		id:       id,
		topology: topology,
		nodes:    make(map[string]*Node),
		edges:    make(map[string]*Edge),
		groups:   make(map[string]*Group),
		comments: make(map[string]*Comment),
		frames:   make(map[string]*Frame),
	}
}

// ID returns the graph's stable identifier.
func (g *Graph) ID() string { return g.id }

// Topology returns the graph's edge policy.
func (g *Graph) Topology() Topology { return g.topology }

// Types returns the node-type registry attached to the graph, or nil.
func (g *Graph) Types() TypeProvider { return g.types }

// SetTypes attaches a node-type registry reference to the graph.
func (g *Graph) SetTypes(tp TypeProvider) { g.types = tp }

// AddNode adds a node to the graph. Port back-references are filled in
// and ports without a semantic ID default to their name. Returns
// ErrInvalidID, ErrDuplicateID, or ErrDuplicateSemantic on bad input;
// the graph is unchanged on error.
func (g *Graph) AddNode(n *Node) error {
	if n.ID == "" {
		return ErrInvalidID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateID
	}
	seen := make(map[string]bool, len(n.Ports))
	for _, p := range n.Ports {
		if p.ID == "" {
			p.ID = NewID()
		}
		if p.Semantic == "" {
			p.Semantic = p.Name
		}
		if p.Semantic != "" {
			if seen[p.Semantic] {
				return ErrDuplicateSemantic
			}
			seen[p.Semantic] = true
		}
		p.NodeID = n.ID
	}
	g.nodes[n.ID] = n
	return nil
}

// Node returns the node with the given ID and whether it exists.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes. The order is not guaranteed.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// RemoveNode removes the node with the given ID along with every edge
// touching one of its ports and its membership in groups and frames.
// Removing an absent node is a no-op.
func (g *Graph) RemoveNode(id string) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	owned := make(map[string]bool, len(n.Ports))
	for _, p := range n.Ports {
		owned[p.ID] = true
	}
	for eid, e := range g.edges {
		if owned[e.FromPort] || owned[e.ToPort] {
			delete(g.edges, eid)
		}
	}
	for _, grp := range g.groups {
		grp.NodeIDs = slices.DeleteFunc(grp.NodeIDs, func(s string) bool { return s == id })
	}
	for _, f := range g.frames {
		f.NodeIDs = slices.DeleteFunc(f.NodeIDs, func(s string) bool { return s == id })
		if f.RepNodeID == id {
			f.RepNodeID = ""
		}
	}
	delete(g.nodes, id)
}

// AddEdge adds an edge between two existing ports. Both endpoints must
// resolve to ports owned by nodes in this graph; a dangling edge is
// never retained. An empty edge ID is replaced with a generated one.
func (g *Graph) AddEdge(e *Edge) error {
	if e.ID == "" {
		e.ID = NewID()
	}
	if _, exists := g.edges[e.ID]; exists {
		return ErrDuplicateID
	}
	if _, _, ok := g.FindPort(e.FromPort); !ok {
		return ErrUnknownSourcePort
	}
	if _, _, ok := g.FindPort(e.ToPort); !ok {
		return ErrUnknownTargetPort
	}
	g.edges[e.ID] = e
	return nil
}

// Edge returns the edge with the given ID and whether it exists.
func (g *Graph) Edge(id string) (*Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

// Edges returns all edges. The order is not guaranteed.
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		edges = append(edges, e)
	}
	return edges
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// RemoveEdge removes the edge with the given ID if it exists.
func (g *Graph) RemoveEdge(id string) { delete(g.edges, id) }

// FindPort resolves a port ID to its owning node and the port itself.
func (g *Graph) FindPort(portID string) (*Node, *Port, bool) {
	if portID == "" {
		return nil, nil, false
	}
	for _, n := range g.nodes {
		if p := n.Port(portID); p != nil {
			return n, p, true
		}
	}
	return nil, nil, false
}

// PortBySemantic resolves a (node ID, semantic port ID) pair. This is
// the lookup edges use to re-bind after a restore, when generated port
// IDs may have changed.
func (g *Graph) PortBySemantic(nodeID, semantic string) (*Port, bool) {
	n, ok := g.nodes[nodeID]
	if !ok {
		return nil, false
	}
	p := n.PortBySemantic(semantic)
	return p, p != nil
}

// AddGroup adds a group annotation.
func (g *Graph) AddGroup(grp *Group) error {
	if grp.ID == "" {
		grp.ID = NewID()
	}
	if _, exists := g.groups[grp.ID]; exists {
		return ErrDuplicateID
	}
	g.groups[grp.ID] = grp
	return nil
}

// Group returns the group with the given ID and whether it exists.
func (g *Graph) Group(id string) (*Group, bool) {
	grp, ok := g.groups[id]
	return grp, ok
}

// Groups returns all groups. The order is not guaranteed.
func (g *Graph) Groups() []*Group {
	groups := make([]*Group, 0, len(g.groups))
	for _, grp := range g.groups {
		groups = append(groups, grp)
	}
	return groups
}

// RemoveGroup removes the group with the given ID if it exists.
func (g *Graph) RemoveGroup(id string) { delete(g.groups, id) }

// AddComment adds a comment annotation.
func (g *Graph) AddComment(c *Comment) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	if _, exists := g.comments[c.ID]; exists {
		return ErrDuplicateID
	}
	g.comments[c.ID] = c
	return nil
}

// Comment returns the comment with the given ID and whether it exists.
func (g *Graph) Comment(id string) (*Comment, bool) {
	c, ok := g.comments[id]
	return c, ok
}

// Comments returns all comments. The order is not guaranteed.
func (g *Graph) Comments() []*Comment {
	comments := make([]*Comment, 0, len(g.comments))
	for _, c := range g.comments {
		comments = append(comments, c)
	}
	return comments
}

// RemoveComment removes the comment with the given ID if it exists.
func (g *Graph) RemoveComment(id string) { delete(g.comments, id) }

// AddFrame adds a sub-graph frame.
func (g *Graph) AddFrame(f *Frame) error {
	if f.ID == "" {
		f.ID = NewID()
	}
	if _, exists := g.frames[f.ID]; exists {
		return ErrDuplicateID
	}
	g.frames[f.ID] = f
	return nil
}

// Frame returns the frame with the given ID and whether it exists.
func (g *Graph) Frame(id string) (*Frame, bool) {
	f, ok := g.frames[id]
	return f, ok
}

// Frames returns all sub-graph frames. The order is not guaranteed.
func (g *Graph) Frames() []*Frame {
	frames := make([]*Frame, 0, len(g.frames))
	for _, f := range g.frames {
		frames = append(frames, f)
	}
	return frames
}

// RemoveFrame removes the frame with the given ID if it exists.
func (g *Graph) RemoveFrame(id string) { delete(g.frames, id) }

// Validate checks graph integrity and returns nil if valid.
// Every edge must resolve at both endpoints, and for acyclic topology
// the node-level edge structure must contain no directed cycle.
func (g *Graph) Validate() error {
	adj := make(map[string][]string, len(g.nodes))
	for _, e := range g.edges {
		from, _, okF := g.FindPort(e.FromPort)
		to, _, okT := g.FindPort(e.ToPort)
		if !okF || !okT {
			return ErrInvalidEdgeEndpoint
		}
		adj[from.ID] = append(adj[from.ID], to.ID)
	}
	if g.topology != TopologyAcyclic {
		return nil
	}
	return detectCycles(g.nodes, adj)
}

func detectCycles(nodes map[string]*Node, adj map[string][]string) error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, next := range adj[id] {
			switch color[next] {
			case white:
				dfs(next)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for id := range nodes {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
