// Package wire defines the versioned document schema for node-graph
// persistence.
//
// The records here mirror the graph model using primitives and lists
// only, so a document is stable across schema evolution and storage
// backends. The top-level shape is:
//
//	{
//	  "id": "...",
//	  "schemaVersion": 2,
//	  "settings": {"topology": "acyclic"},
//	  "nodes": [...],
//	  "edges": [...],
//	  "groups": [...],
//	  "comments": [...],
//	  "subGraphFrames": [...]
//	}
//
// Two representation choices matter for compatibility:
//
//   - Edge endpoints are written as (owning node ID, semantic port ID)
//     pairs. Generated port IDs are regenerated freely between
//     serializations; the semantic ID is the anchor that lets an edge
//     re-bind on restore.
//   - A node's "ports" array may be empty when the node's type is known
//     to the host's type registry - the restore path rebuilds the ports
//     from the type definition instead.
//
// Marshal and Unmarshal bind the records to the codec package with
// explicit per-field code. Unknown keys in input are skipped, so newer
// documents remain readable.
package wire
