// Package writers turns pipeline results into serialized outputs.
//
// Writers own all presentation knowledge (TSV, JSON, JSONL, CSV); the
// pipeline stays computation-only. JSON and JSONL go through pkg/api (v1) for
// a stable wire format.
package writers
