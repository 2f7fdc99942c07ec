// Package textutil provides text helpers shared by the parser, aggregator, and
// enrichment cache.
//
// Film titles from the export are folded (Unicode case folding plus whitespace
// collapse) before being used as join keys, so "The Thing" and "the  thing"
// correlate while distinct spellings stay distinct.
package textutil
