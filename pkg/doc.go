// Package pkg provides the core libraries for nodedoc graph persistence.
//
// # Overview
//
// nodedoc saves and loads node-graph documents: the boxes, wires, and
// annotations a visual editor works with. The pkg directory is
// organized by layer:
//
//  1. [codec] - The text format: a hand-rolled encoder and decoder
//  2. [wire] - Document records and their field bindings
//  3. [graph] - The in-memory graph model a host tool edits
//  4. [persist] - Capture and restore between graph and document
//  5. [io] - Whole-document export, subset export, and merge import
//  6. [store] - Pluggable document storage backends
//
// # Architecture
//
// The typical data flow through nodedoc:
//
//	graph.Graph (editor state)
//	     ↓ persist.Capture
//	wire.Graph (document record)
//	     ↓ wire.Marshal / codec
//	document text
//	     ↓ io / store / HTTP API
//	file, directory, MongoDB, or Redis
//
// Restore runs the same path in reverse, re-binding edges by semantic
// port ID and rebuilding registry-known ports from the type provider.
//
// # Quick Start
//
//	g := graph.New("", graph.TopologyAcyclic)
//	n := &graph.Node{ID: graph.NewID(), Type: "Math.Add"}
//	n.AddPort(&graph.Port{Name: "a", Dir: graph.Input})
//	_ = g.AddNode(n)
//
//	text := io.ExportAll(g, persist.Options{})
//	restored, err := io.Read(strings.NewReader(text), persist.Options{})
package pkg
