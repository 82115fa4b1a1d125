// Package pkg provides the libraries behind nnviz, a renderer for
// feed-forward neural network diagrams.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. [render] - Geometry, styling, label placement and drawing surfaces
//  2. [weights] and [io] - Weight matrices and network description files
//  3. [pipeline] - Orchestration (prepare → draw → encode) with caching
//  4. Infrastructure - [cache], [config], [errors], [observability], [server]
//
// # Architecture
//
// The typical data flow:
//
//	network.json / network.toml / POST /v1/render
//	         ↓
//	    [io] package (decode layers, weights, epoch)
//	         ↓
//	    [pipeline] package (validate, cache lookup)
//	         ↓
//	    [render] packages (layout + drawing)
//	         ↓
//	    PNG/SVG/PDF/JSON/DOT output
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.ExecuteFile(ctx, "epoch-7.json", pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	path, _ := pipeline.OutputPath(config.Default().Output, res.Epoch, res.Format)
//	err = pipeline.WriteArtifact(path, res.Artifact) // ANN/ANN-7.png
//
// [render]: github.com/matzehuels/nnviz/pkg/render
// [weights]: github.com/matzehuels/nnviz/pkg/weights
// [io]: github.com/matzehuels/nnviz/pkg/io
// [pipeline]: github.com/matzehuels/nnviz/pkg/pipeline
// [cache]: github.com/matzehuels/nnviz/pkg/cache
// [config]: github.com/matzehuels/nnviz/pkg/config
// [errors]: github.com/matzehuels/nnviz/pkg/errors
// [observability]: github.com/matzehuels/nnviz/pkg/observability
// [server]: github.com/matzehuels/nnviz/pkg/server
package pkg
