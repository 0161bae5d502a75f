package persist

import (
	"github.com/nodedoc/nodedoc/pkg/graph"
	"github.com/nodedoc/nodedoc/pkg/wire"
)

// Enum fields travel as string tags. Unrecognized tags fall back to
// the zero constant of each enum, matching the topology rule.

func dirTag(d graph.Direction) string {
	if d == graph.Output {
		return wire.DirOut
	}
	return wire.DirIn
}

func dirFromTag(tag string) graph.Direction {
	if tag == wire.DirOut {
		return graph.Output
	}
	return graph.Input
}

func kindTag(k graph.PortKind) string {
	if k == graph.KindControl {
		return wire.KindControl
	}
	return wire.KindData
}

func kindFromTag(tag string) graph.PortKind {
	if tag == wire.KindControl {
		return graph.KindControl
	}
	return graph.KindData
}

func capacityTag(c graph.Capacity) string {
	if c == graph.CapMulti {
		return wire.CapMulti
	}
	return wire.CapSingle
}

func capacityFromTag(tag string) graph.Capacity {
	if tag == wire.CapMulti {
		return graph.CapMulti
	}
	return graph.CapSingle
}

func vec2Out(v graph.Vec2) wire.Vec2 { return wire.Vec2{X: v.X, Y: v.Y} }

func vec2In(v wire.Vec2) graph.Vec2 { return graph.Vec2{X: v.X, Y: v.Y} }

func colorOut(c graph.Color) wire.Color {
	return wire.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func colorIn(c wire.Color) graph.Color {
	return graph.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func rectIn(pos, size wire.Vec2) graph.Rect {
	return graph.Rect{Pos: vec2In(pos), Size: vec2In(size)}
}
