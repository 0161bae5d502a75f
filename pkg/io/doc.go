// Package io provides whole-document and partial import/export on top
// of the persister.
//
// # Whole-graph round trips
//
// [ExportAll] and [ReadFile]/[Read] convert between a live graph and
// document text; [WriteFile]/[Write] are the file-backed counterparts.
// A closed round trip preserves every entity, attribute, and edge.
//
// # Sub-graph extraction and merge
//
// [ExportSubset] produces a clipboard-style document containing only a
// chosen node set and the edges interior to it. [ImportInto] merges a
// document into an existing graph with fresh identifiers for every
// node, port, and edge, an optional positional offset, and the same
// semantic edge re-binding as restore - edges that cannot resolve in
// the target are dropped rather than imported dangling.
//
// All operations are synchronous in-memory transformations; the only
// scratch state is the identifier map local to a single ImportInto
// call.
package io
