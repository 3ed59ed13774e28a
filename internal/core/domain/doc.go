// Package domain defines the core entities of the slide merge pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document and Line: a classified slide deck
//   - ExclusionSet: line indices dropped from the filtered variants
//   - MergeResult and BatchResult: merge outcomes
//   - Settings: prefixes, thresholds and external tool configuration
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
