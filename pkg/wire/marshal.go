package wire

import "github.com/nodedoc/nodedoc/pkg/codec"

// Marshal renders a document record as format text.
func Marshal(d *Graph) string {
	e := codec.NewEncoder()
	e.Root(func() {
		e.Str("id", d.ID)
		e.Int("schemaVersion", d.SchemaVersion)
		e.Obj("settings", func() {
			e.Str("topology", d.Topology)
		})
		e.List("nodes", len(d.Nodes), func(i int) {
			encodeNode(e, &d.Nodes[i])
		})
		e.List("edges", len(d.Edges), func(i int) {
			encodeEdge(e, &d.Edges[i])
		})
		e.List("groups", len(d.Groups), func(i int) {
			encodeGroup(e, &d.Groups[i])
		})
		e.List("comments", len(d.Comments), func(i int) {
			encodeComment(e, &d.Comments[i])
		})
		e.List("subGraphFrames", len(d.Frames), func(i int) {
			encodeFrame(e, &d.Frames[i])
		})
	})
	return e.String()
}

func encodeNode(e *codec.Encoder, n *Node) {
	e.Item(func() {
		e.Str("id", n.ID)
		e.Str("type", n.Type)
		encodeVec2(e, "pos", n.Pos)
		encodeVec2(e, "size", n.Size)
		e.Bool("collapsed", n.Collapsed)
		e.Bool("adHocPorts", n.AdHocPorts)
		e.List("ports", len(n.Ports), func(i int) {
			encodePort(e, &n.Ports[i])
		})
		e.Str("data", n.Data)
	})
}

func encodePort(e *codec.Encoder, p *Port) {
	e.Item(func() {
		e.Str("id", p.ID)
		e.Str("name", p.Name)
		e.Str("semanticId", p.Semantic)
		e.Str("direction", p.Dir)
		e.Str("kind", p.Kind)
		e.Str("dataType", p.DataType)
		e.Str("capacity", p.Capacity)
		e.Int("order", p.Order)
	})
}

func encodeEdge(e *codec.Encoder, ed *Edge) {
	e.Item(func() {
		e.Str("id", ed.ID)
		e.Str("fromNode", ed.FromNode)
		e.Str("fromPort", ed.FromPort)
		e.Str("toNode", ed.ToNode)
		e.Str("toPort", ed.ToPort)
		e.Str("data", ed.Data)
	})
}

func encodeGroup(e *codec.Encoder, g *Group) {
	e.Item(func() {
		e.Str("id", g.ID)
		e.Str("label", g.Label)
		encodeVec2(e, "pos", g.Pos)
		encodeVec2(e, "size", g.Size)
		encodeColor(e, g.Color)
		e.List("nodes", len(g.NodeIDs), func(i int) {
			e.ItemStr(g.NodeIDs[i])
		})
	})
}

func encodeComment(e *codec.Encoder, c *Comment) {
	e.Item(func() {
		e.Str("id", c.ID)
		e.Str("text", c.Text)
		encodeVec2(e, "pos", c.Pos)
		encodeVec2(e, "size", c.Size)
		encodeColor(e, c.Color)
	})
}

func encodeFrame(e *codec.Encoder, f *Frame) {
	e.Item(func() {
		e.Str("id", f.ID)
		e.Str("title", f.Title)
		encodeVec2(e, "pos", f.Pos)
		encodeVec2(e, "size", f.Size)
		encodeColor(e, f.Color)
		e.List("nodes", len(f.NodeIDs), func(i int) {
			e.ItemStr(f.NodeIDs[i])
		})
		e.Str("repNode", f.RepNode)
		e.Bool("collapsed", f.Collapsed)
		e.Str("assetRef", f.AssetRef)
	})
}

func encodeVec2(e *codec.Encoder, name string, v Vec2) {
	e.Obj(name, func() {
		e.Float32("x", v.X)
		e.Float32("y", v.Y)
	})
}

func encodeColor(e *codec.Encoder, c Color) {
	e.Obj("color", func() {
		e.Float32("r", c.R)
		e.Float32("g", c.G)
		e.Float32("b", c.B)
		e.Float32("a", c.A)
	})
}
