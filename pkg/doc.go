// Package pkg provides the core libraries for Schreier permutation group
// computations.
//
// # Overview
//
// Schreier answers questions about finite permutation groups given by
// generators (how many elements, is this one of them, where can this point
// go) using stabilizer chains built with the Schreier-Sims algorithm. The
// pkg directory is organized by concern:
//
//  1. [perm] - Permutation values: composition, cycles, notation
//  2. [group] - Groups, orbits and stabilizer chains
//  3. [groupio] - Serialization formats for groups and chains
//  4. [catalog] - Persistence of named groups
//  5. [cache] - Content-addressed caching of computed results
//  6. [render] - Graphviz visualizations of cycles and orbits
//  7. [errors], [observability], [buildinfo] - Cross-cutting support
//
// # Architecture
//
// The typical data flow through Schreier:
//
//	Cycle notation / JSON document
//	         ↓
//	    [perm] package (parse, validate)
//	         ↓
//	    [group] package (orbits, stabilizer chain)
//	         ↓
//	    [groupio] package (summaries, documents)
//	         ↓
//	    CLI output / HTTP API / SVG
//
// # Quick Start
//
// Compute the order of the symmetric group on five points:
//
//	import (
//	    "github.com/matzehuels/schreier/pkg/group"
//	    "github.com/matzehuels/schreier/pkg/perm"
//	)
//
//	a, _ := perm.ParseCycles("(0 1)", 5)
//	b, _ := perm.ParseCycles("(0 1 2 3 4)", 5)
//	g, _ := group.New([]perm.Permutation{a, b})
//	order, _ := g.Order() // 120
package pkg
