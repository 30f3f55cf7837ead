// Package waio benchmarks how quickly a crawler can understand an HTML page.
// It runs a heuristic extractor, which has to guess title, summary and main
// content from unannotated markup, against a structured extractor that picks
// those fields from elements annotated with data-ai-* attributes, and models
// the cognitive time the annotations save for a given bot.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., trafilatura/, htmlquery/, sqlite/).
package waio
