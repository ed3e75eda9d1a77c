// Package terrain assembles, checks, and repairs terrain editor project
// documents.
//
// The target format is a reference-preserving JSON document: every
// referenceable object carries a "$id" whose first occurrence defines it,
// and later occurrences are "$ref" back-references. Key order inside objects
// is significant - the editor writes per-node property keys before the
// common identity/name/position/port block, and files that deviate from the
// observed order are not reliably accepted. [Object] therefore preserves
// insertion order through marshal and unmarshal.
//
// [Assemble] renders a validated graph into a [Document]. [Check] re-parses
// the assembled tree against the registry and collects structural defects;
// [Repair] produces a corrected new generation and re-checks exactly once.
// Repair is best-effort: defects that survive the single pass are reported,
// never retried indefinitely.
package terrain
