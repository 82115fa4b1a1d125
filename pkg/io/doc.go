// Package io reads and writes network description files.
//
// # Overview
//
// A description names the layer sizes of a network and, optionally, its
// connection weights, the scores of its output nodes and the training epoch
// it was taken at. Descriptions are the input of `nnviz render` and the body
// of the HTTP render endpoint.
//
// # JSON Format
//
//	{
//	  "layers": [2, 3, 1],
//	  "weights": [
//	    [[0.1, 0.2, 0.3], [0.4, 0.5, 0.6]],
//	    [[0.7], [0.8], [0.9]]
//	  ],
//	  "output_weights": [0.85],
//	  "epoch": 12
//	}
//
// weights holds one matrix per consecutive layer pair; matrix k has one row
// per node of layer k and one column per node of layer k+1. Omit it to draw
// every connection with the default weight.
//
// # Dense Layer Definitions
//
// layers may instead list dense layers, as exported by model libraries:
//
//	"layers": [
//	  {"type": "dense", "input_size": 2, "output_size": 3},
//	  {"type": "dense", "output_size": 1}
//	]
//
// The sizes are the input width of the first layer followed by the output
// width of every layer. Other layer types are rejected.
//
// # TOML Format
//
// The same fields in TOML, with dense layers as an array of tables:
//
//	epoch = 12
//
//	[[layers]]
//	type = "dense"
//	input_size = 2
//	output_size = 3
//
// # Round Trip
//
// [Network.Input] turns a description into [diagram.Input]; [FromInput] and
// [WriteJSON] go the other way.
//
// [diagram.Input]: github.com/matzehuels/nnviz/pkg/render/diagram#Input
package io
