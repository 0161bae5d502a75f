// Package graph defines the mutable in-memory node-graph model.
//
// A [Graph] owns nodes, edges, groups, comments, and sub-graph frames;
// a [Node] owns its ports. Everything is keyed by unique string IDs.
// Ports additionally carry a semantic identifier - a stable logical
// name that survives re-serialization even when the generated port IDs
// do not. Edges reference ports by generated ID while in memory; the
// persist package converts those references to (node ID, semantic ID)
// pairs on the way to disk.
//
// The package enforces referential integrity at mutation time: an edge
// whose endpoints do not resolve to owned ports is rejected, and
// removing a node removes its edges. [Graph.Validate] re-checks
// integrity and, for acyclic graphs, the absence of directed cycles.
//
// External collaborators plug in through small interfaces:
// [TypeProvider] resolves a node's type identifier to its default port
// schema. The model itself performs no I/O and holds no global state.
package graph
