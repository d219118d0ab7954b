// Package io loads road maps from flat files and serializes them as JSON.
//
// # Flat Files
//
// Three CSV inputs describe a map. All accept '#' comment lines and ignore
// blank lines; fields are trimmed of surrounding whitespace.
//
// Edges, one undirected road per line:
//
//	Lisbon,Porto,313
//	Porto,Braga,55
//
// Heuristic matrix: a header row naming the columns after a leading index
// cell, then one row per node. The cell in column C of row R is stored as the
// estimate for the ordered pair (C, R), so a search towards goal G reads
// column G. Empty, "nan", "na" and "null" cells are explicit gaps; only one
// triangle of the matrix needs to be filled:
//
//	,Braga,Lisbon,Porto
//	Braga,0,,
//	Lisbon,310,0,
//	Porto,50,274,0
//
// Coordinates, one "node,x,y" line per node, used to pin nodes when
// rendering:
//
//	Lisbon,-9.14,38.72
//
// Use [ReadEdges], [ReadHeuristic] and [ReadCoordinates] on any io.Reader, or
// the Import* variants on file paths. Errors name the offending line.
//
// # JSON
//
// [WriteJSON] and [ReadJSON] round-trip a graph through a deterministic JSON
// document (nodes and edges sorted), used by the export command, the HTTP API
// and as the input of dataset hashing:
//
//	{
//	  "nodes": [{"id": "Braga"}, {"id": "Lisbon"}, {"id": "Porto"}],
//	  "edges": [
//	    {"from": "Braga", "to": "Porto", "weight": 55},
//	    {"from": "Lisbon", "to": "Porto", "weight": 313}
//	  ]
//	}
package io
