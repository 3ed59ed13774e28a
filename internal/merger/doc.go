// Package merger implements the slide deck merge engine.
//
// A deck is classified line by line, duplicate section headers are detected
// with a character-set similarity score, and three output variants are built:
// Site and Document drop directives, surplus separators and duplicate headers,
// Slide keeps the full deck. Image links are rewritten from Marp to Pandoc
// attribute syntax in every variant.
//
// The package is pure: it performs no I/O. File handling lives in the
// merge service.
package merger
