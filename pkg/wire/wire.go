package wire

// Tags used for enum-valued document fields. The persist package maps
// these to and from the model's typed constants.
const (
	DirIn  = "in"
	DirOut = "out"

	KindData    = "data"
	KindControl = "control"

	CapSingle = "single"
	CapMulti  = "multi"
)

// Vec2 is a 2D vector record.
type Vec2 struct {
	X, Y float32
}

// Color is an RGBA color record with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Graph is the top-level document record. It is transient: built
// freshly per capture, consumed and discarded by restore.
type Graph struct {
	ID            string
	SchemaVersion int
	Topology      string // settings.topology tag
	Nodes         []Node
	Edges         []Edge
	Groups        []Group
	Comments      []Comment
	Frames        []Frame
}

// Node mirrors a graph node. Ports may be empty when the node's type
// is registry-known and the port schema can be rebuilt on restore.
// Data holds codec-serialized user data, empty when absent.
type Node struct {
	ID         string
	Type       string
	Pos        Vec2
	Size       Vec2
	Collapsed  bool
	AdHocPorts bool
	Ports      []Port
	Data       string
}

// Port mirrors a node port. Direction, Kind, and Capacity are tag
// strings; Semantic is the stable logical name edges bind to.
type Port struct {
	ID       string
	Name     string
	Semantic string
	Dir      string
	Kind     string
	DataType string
	Capacity string
	Order    int
}

// Edge mirrors a graph edge. Endpoints are stored as the owning node's
// ID plus the port's semantic ID - never as raw port IDs, which are
// regenerated between serializations.
type Edge struct {
	ID       string
	FromNode string
	FromPort string // semantic ID
	ToNode   string
	ToPort   string // semantic ID
	Data     string
}

// Group mirrors a group annotation.
type Group struct {
	ID      string
	Label   string
	Pos     Vec2
	Size    Vec2
	Color   Color
	NodeIDs []string
}

// Comment mirrors a comment annotation.
type Comment struct {
	ID    string
	Text  string
	Pos   Vec2
	Size  Vec2
	Color Color
}

// Frame mirrors a sub-graph frame.
type Frame struct {
	ID        string
	Title     string
	Pos       Vec2
	Size      Vec2
	Color     Color
	NodeIDs   []string
	RepNode   string
	Collapsed bool
	AssetRef  string
}
