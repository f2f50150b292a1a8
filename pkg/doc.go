// Package pkg provides the core libraries for Spriteforge sprite processing.
//
// # Overview
//
// Spriteforge generates the diagonal walk rows (NE, NW, SE, SW) that
// standard LPC sprite sheets lack, by squashing, shearing and blending the
// four cardinal rows they do have. The pkg directory is organized into
// four main areas:
//
//  1. [sprite] - Domain logic (sheet layout, directions, geometry, synthesis)
//  2. [pipeline] - Orchestration (load → transform → encode, with caching)
//  3. [batch] / [registry] / [server] - Asset tree tooling
//  4. [cache] / [config] / [errors] / [imageio] - Infrastructure
//
// # Architecture
//
// The typical data flow through Spriteforge:
//
//	4-row LPC sprite sheet (south, west, north, east)
//	         ↓
//	    [sprite/geom] package (crop, squash, shear, blend)
//	         ↓
//	    [sprite/synth] package (per-frame diagonal assembly)
//	         ↓
//	    [pipeline] package (caching, encoding)
//	         ↓
//	    PNG diagonal row output
//
// # Quick Start
//
// Synthesize a single diagonal row:
//
//	sheet, err := imageio.Load("hero.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	row, err := synth.Synthesize(sheet, sprite.NorthEast, synth.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := imageio.Save(row, "hero_ne.png"); err != nil {
//	    log.Fatal(err)
//	}
//
// Or run the cached pipeline the CLI uses:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, "hero.png", pipeline.Options{
//	    Operation: pipeline.OperationDiagonal,
//	    Direction: "ne",
//	})
package pkg
