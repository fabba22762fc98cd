// Package pipeline composes one request: select the gene's reference rows,
// resolve orientation, transform the pA-site scores, annotate contexts,
// align to the genome and build the intensity matrix.
//
// The only external contract is Source (Select). Every value a request needs
// travels in Request; nothing is shared between requests except the
// read-only Source.
package pipeline
