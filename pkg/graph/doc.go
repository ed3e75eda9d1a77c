// Package graph builds and validates the in-memory node graph that a
// terrain project document is assembled from.
//
// A graph is constructed from caller-supplied node and connection specs via
// [Build]. Construction resolves every node type against the registry,
// instantiates ports from the type's port schema, and records pending
// connections on the involved ports. Direction and requiredness rules are
// deliberately not checked during construction; [ValidateConnections]
// collects every connection defect in one pass so callers see the complete
// defect set instead of the first failure.
//
// Property resolution is a separate, explicit step ([Graph.ResolveProperties]
// or [ResolveNode]) governed by a property mode:
//
//   - ModeMinimal: only caller overrides survive
//   - ModeFull: every default is applied, then overridden
//   - ModeSmart: defaults are synthesized only for types known to fail in
//     the editor when under-specified
//
// Once a graph has been handed to the assembler it must be treated as
// immutable; repair passes build a new graph rather than mutating one that
// has begun serializing.
package graph
