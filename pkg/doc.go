// Package pkg provides the core libraries for Shelfview.
//
// # Overview
//
// Shelfview draws a library (shelves of books) as an illustrated bookshelf.
// The pkg directory is organized into these areas:
//
//  1. [library] - Domain model and JSON/YAML/TOML codecs
//  2. [render] - Layout, styles, drawing plan and output sinks
//  3. [pipeline] - Orchestration (load → layout → plan → render)
//  4. [cache] - Artifact caching (file, Redis, none)
//  5. [errors], [observability], [buildinfo], [fonts] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through Shelfview:
//
//	library.yaml
//	     ↓
//	[library] package (decode + validate)
//	     ↓
//	[render/shelf/layout] (size envelopes → row packing → placement)
//	     ↓
//	[render/shelf/plan] (colours + fitted labels → ordered operations)
//	     ↓
//	[render/shelf/sink] → SVG/PNG/PDF/JSON
//
// # Quick Start
//
//	lib, _ := library.Load("library.yaml")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, lib, pipeline.Options{Seed: 7, Leaning: true})
//	svg := result.Artifacts["svg"]
//
// [library]: github.com/matzehuels/shelfview/pkg/library
// [render]: github.com/matzehuels/shelfview/pkg/render
// [render/shelf/layout]: github.com/matzehuels/shelfview/pkg/render/shelf/layout
// [render/shelf/plan]: github.com/matzehuels/shelfview/pkg/render/shelf/plan
// [render/shelf/sink]: github.com/matzehuels/shelfview/pkg/render/shelf/sink
// [pipeline]: github.com/matzehuels/shelfview/pkg/pipeline
// [cache]: github.com/matzehuels/shelfview/pkg/cache
// [errors]: github.com/matzehuels/shelfview/pkg/errors
// [observability]: github.com/matzehuels/shelfview/pkg/observability
// [buildinfo]: github.com/matzehuels/shelfview/pkg/buildinfo
// [fonts]: github.com/matzehuels/shelfview/pkg/fonts
package pkg
