package domain

import "time"

// MergeResult describes the outcome of merging one file.
type MergeResult struct {
	// Input is the merged file.
	Input string

	// Skipped is true for ignored pages; no outputs were written.
	Skipped bool

	// Outputs maps each variant to the file it was written to.
	Outputs map[Variant]string

	// Excluded holds the line indices dropped from the Site and Document variants.
	Excluded []int

	// Passes is the number of detector passes run.
	Passes int

	// Warnings holds non-fatal problems, such as malformed image links.
	Warnings []error

	// Prologue is the decoded configuration prologue, if any.
	Prologue *Prologue

	// Duration is the wall time of the merge.
	Duration time.Duration
}

// FileFailure records a file that failed within a batch.
type FileFailure struct {
	Path string
	Err  error
}

// BatchResult aggregates a folder-wide merge.
type BatchResult struct {
	// Folder is the merged folder.
	Folder string

	// Results holds one entry per processed file, skipped files included.
	Results []*MergeResult

	// Failures holds the files that could not be merged.
	Failures []FileFailure
}

// OK reports whether every file in the batch succeeded.
func (b *BatchResult) OK() bool {
	return len(b.Failures) == 0
}

// Merged returns the number of files that produced outputs.
func (b *BatchResult) Merged() int {
	n := 0
	for _, r := range b.Results {
		if !r.Skipped {
			n++
		}
	}
	return n
}

// Skipped returns the number of ignored files.
func (b *BatchResult) Skipped() int {
	return len(b.Results) - b.Merged()
}
