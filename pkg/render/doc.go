// Package render produces Graphviz visualizations of permutations and
// orbits.
//
// Rendering is a two-stage pipeline: structures are first converted to DOT
// source ([CycleDOT], [OrbitDOT]), which [RenderSVG] then lays out with
// Graphviz. The DOT stage is pure string construction and cheap to test;
// the SVG stage needs the embedded Graphviz engine.
package render
