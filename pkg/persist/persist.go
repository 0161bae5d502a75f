package persist

import (
	"fmt"

	"github.com/nodedoc/nodedoc/pkg/graph"
)

// SchemaVersion is the document version every capture is stamped with.
// It belongs to the persister, not to whatever version an input graph
// was last read from.
const SchemaVersion = 2

// MinSchemaVersion is the restore floor. Version 1 documents must be
// migrated by an external tool before being handed to this package;
// the gate is hard, not a warning.
const MinSchemaVersion = 2

// VersionError reports a document below the supported version floor.
type VersionError struct {
	Found int
	Min   int
}

// Error implements the error interface.
func (e *VersionError) Error() string {
	return fmt.Sprintf("document schema version %d is below the minimum supported version %d; migrate the document with an external tool and retry",
		e.Found, e.Min)
}

// NodeDataCodec serializes opaque node user data. The type identifier
// of the owning node is passed through so the codec can pick the right
// concrete shape. A false return means the codec does not handle this
// payload and it is dropped (encode) or left nil (decode).
type NodeDataCodec interface {
	EncodeNodeData(nodeType string, data any) (string, bool)
	DecodeNodeData(nodeType, text string) (any, bool)
}

// EdgeDataCodec serializes opaque edge user data.
type EdgeDataCodec interface {
	EncodeEdgeData(data any) (string, bool)
	DecodeEdgeData(text string) (any, bool)
}

// Options carries the persister's external collaborators. Every field
// is optional; missing capabilities degrade gracefully (ports are
// written verbatim, user data is dropped).
type Options struct {
	// Types resolves node type identifiers to their default port
	// schema. Capture omits port metadata only when Types is set:
	// restore has no graph to consult, so a registry attached to the
	// graph alone must not influence what gets written.
	Types graph.TypeProvider

	// NodeData and EdgeData are independent capability pairs; either
	// or both may be nil.
	NodeData NodeDataCodec
	EdgeData EdgeDataCodec
}
