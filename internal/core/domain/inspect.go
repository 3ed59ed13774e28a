package domain

// Heading is one entry of a Markdown heading outline.
type Heading struct {
	Level int    `json:"level"`
	Title string `json:"title"`
}

// ExcludedLine describes a line dropped from the filtered variants.
type ExcludedLine struct {
	Index int      `json:"index"`
	Kind  LineKind `json:"kind"`
	Text  string   `json:"text"`
}

// Inspection is a dry-run report of a merge.
type Inspection struct {
	Path     string           `json:"path"`
	Ignored  bool             `json:"ignored"`
	Lines    int              `json:"lines"`
	Counts   map[LineKind]int `json:"counts"`
	Excluded []ExcludedLine   `json:"excluded"`
	Passes   int              `json:"passes"`
	Prologue *Prologue        `json:"prologue,omitempty"`
	Outline  []Heading        `json:"outline"`
	Warnings []string         `json:"warnings,omitempty"`
}

// NavEntry is one page of the generated site navigation.
type NavEntry struct {
	Title string
	Path  string
}

// CleanResult reports removed build artifacts.
type CleanResult struct {
	Removed  []string
	Failures []FileFailure
}

// OK reports whether every removal succeeded.
func (c *CleanResult) OK() bool {
	return len(c.Failures) == 0
}
