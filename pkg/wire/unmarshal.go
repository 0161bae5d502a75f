package wire

import "github.com/nodedoc/nodedoc/pkg/codec"

// Unmarshal parses document text into a record. Fields absent from the
// input keep their zero values; unknown fields are skipped. Malformed
// text returns a [*codec.SyntaxError].
func Unmarshal(text string) (*Graph, error) {
	d := codec.NewDecoder(text)
	doc := &Graph{}
	err := d.Object(func(key string) (bool, error) {
		switch key {
		case "id":
			return read(&doc.ID, d.Str)
		case "schemaVersion":
			return read(&doc.SchemaVersion, d.Int)
		case "settings":
			return true, d.Object(func(key string) (bool, error) {
				if key == "topology" {
					return read(&doc.Topology, d.Str)
				}
				return false, nil
			})
		case "nodes":
			return true, d.List(func() error {
				n, err := decodeNode(d)
				if err != nil {
					return err
				}
				doc.Nodes = append(doc.Nodes, n)
				return nil
			})
		case "edges":
			return true, d.List(func() error {
				e, err := decodeEdge(d)
				if err != nil {
					return err
				}
				doc.Edges = append(doc.Edges, e)
				return nil
			})
		case "groups":
			return true, d.List(func() error {
				g, err := decodeGroup(d)
				if err != nil {
					return err
				}
				doc.Groups = append(doc.Groups, g)
				return nil
			})
		case "comments":
			return true, d.List(func() error {
				c, err := decodeComment(d)
				if err != nil {
					return err
				}
				doc.Comments = append(doc.Comments, c)
				return nil
			})
		case "subGraphFrames":
			return true, d.List(func() error {
				f, err := decodeFrame(d)
				if err != nil {
					return err
				}
				doc.Frames = append(doc.Frames, f)
				return nil
			})
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// read populates dst from one decoder value method and reports the
// field as handled.
func read[T any](dst *T, fn func() (T, error)) (bool, error) {
	v, err := fn()
	if err != nil {
		return true, err
	}
	*dst = v
	return true, nil
}

func decodeNode(d *codec.Decoder) (Node, error) {
	var n Node
	err := d.Object(func(key string) (bool, error) {
		switch key {
		case "id":
			return read(&n.ID, d.Str)
		case "type":
			return read(&n.Type, d.Str)
		case "pos":
			return true, decodeVec2(d, &n.Pos)
		case "size":
			return true, decodeVec2(d, &n.Size)
		case "collapsed":
			return read(&n.Collapsed, d.Bool)
		case "adHocPorts":
			return read(&n.AdHocPorts, d.Bool)
		case "ports":
			return true, d.List(func() error {
				p, err := decodePort(d)
				if err != nil {
					return err
				}
				n.Ports = append(n.Ports, p)
				return nil
			})
		case "data":
			return read(&n.Data, d.Str)
		}
		return false, nil
	})
	return n, err
}

func decodePort(d *codec.Decoder) (Port, error) {
	var p Port
	err := d.Object(func(key string) (bool, error) {
		switch key {
		case "id":
			return read(&p.ID, d.Str)
		case "name":
			return read(&p.Name, d.Str)
		case "semanticId":
			return read(&p.Semantic, d.Str)
		case "direction":
			return read(&p.Dir, d.Str)
		case "kind":
			return read(&p.Kind, d.Str)
		case "dataType":
			return read(&p.DataType, d.Str)
		case "capacity":
			return read(&p.Capacity, d.Str)
		case "order":
			return read(&p.Order, d.Int)
		}
		return false, nil
	})
	return p, err
}

func decodeEdge(d *codec.Decoder) (Edge, error) {
	var e Edge
	err := d.Object(func(key string) (bool, error) {
		switch key {
		case "id":
			return read(&e.ID, d.Str)
		case "fromNode":
			return read(&e.FromNode, d.Str)
		case "fromPort":
			return read(&e.FromPort, d.Str)
		case "toNode":
			return read(&e.ToNode, d.Str)
		case "toPort":
			return read(&e.ToPort, d.Str)
		case "data":
			return read(&e.Data, d.Str)
		}
		return false, nil
	})
	return e, err
}

func decodeGroup(d *codec.Decoder) (Group, error) {
	var g Group
	err := d.Object(func(key string) (bool, error) {
		switch key {
		case "id":
			return read(&g.ID, d.Str)
		case "label":
			return read(&g.Label, d.Str)
		case "pos":
			return true, decodeVec2(d, &g.Pos)
		case "size":
			return true, decodeVec2(d, &g.Size)
		case "color":
			return true, decodeColor(d, &g.Color)
		case "nodes":
			return true, decodeStrings(d, &g.NodeIDs)
		}
		return false, nil
	})
	return g, err
}

func decodeComment(d *codec.Decoder) (Comment, error) {
	var c Comment
	err := d.Object(func(key string) (bool, error) {
		switch key {
		case "id":
			return read(&c.ID, d.Str)
		case "text":
			return read(&c.Text, d.Str)
		case "pos":
			return true, decodeVec2(d, &c.Pos)
		case "size":
			return true, decodeVec2(d, &c.Size)
		case "color":
			return true, decodeColor(d, &c.Color)
		}
		return false, nil
	})
	return c, err
}

func decodeFrame(d *codec.Decoder) (Frame, error) {
	var f Frame
	err := d.Object(func(key string) (bool, error) {
		switch key {
		case "id":
			return read(&f.ID, d.Str)
		case "title":
			return read(&f.Title, d.Str)
		case "pos":
			return true, decodeVec2(d, &f.Pos)
		case "size":
			return true, decodeVec2(d, &f.Size)
		case "color":
			return true, decodeColor(d, &f.Color)
		case "nodes":
			return true, decodeStrings(d, &f.NodeIDs)
		case "repNode":
			return read(&f.RepNode, d.Str)
		case "collapsed":
			return read(&f.Collapsed, d.Bool)
		case "assetRef":
			return read(&f.AssetRef, d.Str)
		}
		return false, nil
	})
	return f, err
}

func decodeVec2(d *codec.Decoder, v *Vec2) error {
	return d.Object(func(key string) (bool, error) {
		switch key {
		case "x":
			return read(&v.X, d.Float32)
		case "y":
			return read(&v.Y, d.Float32)
		}
		return false, nil
	})
}

func decodeColor(d *codec.Decoder, c *Color) error {
	return d.Object(func(key string) (bool, error) {
		switch key {
		case "r":
			return read(&c.R, d.Float32)
		case "g":
			return read(&c.G, d.Float32)
		case "b":
			return read(&c.B, d.Float32)
		case "a":
			return read(&c.A, d.Float32)
		}
		return false, nil
	})
}

func decodeStrings(d *codec.Decoder, dst *[]string) error {
	return d.List(func() error {
		s, err := d.Str()
		if err != nil {
			return err
		}
		*dst = append(*dst, s)
		return nil
	})
}
