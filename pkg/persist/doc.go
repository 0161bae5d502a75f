// Package persist converts between the mutable graph model and the
// versioned document schema.
//
// [Capture] snapshots a graph into a [wire.Graph]; [Restore] and
// [RestoreWithDiagnostics] rebuild a graph from one. Both directions
// are pure, synchronous, linear-time passes over in-memory data - no
// I/O, no locking, no state shared between calls.
//
// # Schema versioning
//
// Every capture is stamped with [SchemaVersion]. Restore refuses
// documents below [MinSchemaVersion] with a [*VersionError]; migration
// of old documents is an external concern.
//
// # Port omission
//
// When a [graph.TypeProvider] is supplied and recognizes a node's type
// (and the node does not allow ad-hoc ports), the node's port metadata
// is omitted on capture and rebuilt from the type definition on
// restore. This keeps documents small for graphs built from a stable
// node palette while still round-tripping hand-built nodes verbatim.
//
// # Semantic edge binding
//
// Documents never reference ports by their generated IDs. Each edge
// endpoint is an (owning node ID, semantic port ID) pair, resolved
// against the freshly rebuilt graph on restore. Endpoints that fail to
// resolve cause the edge to be dropped - silently on the default path,
// with one warning per drop on the diagnostics path. The two paths
// share a single reconstruction routine parameterized by a sink, so
// they cannot produce different graphs.
//
// # User data
//
// Node and edge user data is opaque to this package. It is serialized
// only when both the entity carries data and the matching codec
// capability ([NodeDataCodec], [EdgeDataCodec]) is supplied; otherwise
// it is dropped on capture and left nil on restore.
package persist
