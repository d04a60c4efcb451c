// Package groupio defines the canonical serialization formats for
// permutation groups and built stabilizer chains.
//
// Two document types cover the two directions of data flow:
//
//   - [Document] is the defining data of a group (degree plus generators in
//     cycle notation). It is the input format of the CLI and the HTTP API
//     and round-trips: export → re-import yields an equal group.
//   - [ChainDocument] is a computed summary (order, base, per-level orbits).
//     It is output-only; chains are rebuilt from generators, not parsed.
//
// Both carry json and bson tags so the same structs serve files, API
// responses and catalog storage.
package groupio
