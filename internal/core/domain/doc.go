// Package domain defines the core business entities for specsync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - SpecRecord: One document's extracted metadata state
//   - Status, SpecType: Closed enumerations with unknown-coercion
//   - Folder, DocumentFile, Comment: Live Drive listing shapes
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
package domain
