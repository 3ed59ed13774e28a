package merger

import (
	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

// prologueSeparators is the number of leading separators that delimit the configuration prologue.
const prologueSeparators = 2

// Detector finds directives, surplus separators and duplicate headers.
type Detector struct {
	// Threshold is the similarity a header must exceed to be a duplicate of its predecessor.
	Threshold float64

	// MaxPasses caps the fixed-point loop. Zero means len(lines)+1.
	MaxPasses int
}

// Detection is the outcome of running the detector over one document.
type Detection struct {
	// Excluded holds every line index dropped from the filtered variants.
	Excluded *domain.ExclusionSet

	// Passes is the number of full document passes run.
	Passes int

	// Sizes records the exclusion set size after each pass.
	Sizes []int
}

// noAnchor marks a scan position before the first header.
const noAnchor = -1

// scanState is the per-pass detector state.
type scanState struct {
	separatorCount     int
	lastSeparatorIndex int
	lastTitleIndex     int // noAnchor until a header is visited
	repeatFound        bool
}

// NewDetector returns a detector with the given threshold.
// A non-positive threshold falls back to the default.
func NewDetector(threshold float64, maxPasses int) *Detector {
	if threshold <= 0 {
		threshold = domain.DefaultSimilarityThreshold
	}
	return &Detector{Threshold: threshold, MaxPasses: maxPasses}
}

// Detect runs passes until one finds no pending repeat or stops growing the exclusion set.
func (d *Detector) Detect(doc *domain.Document) *Detection {
	result := &Detection{Excluded: domain.NewExclusionSet()}

	maxPasses := d.MaxPasses
	if maxPasses <= 0 {
		maxPasses = doc.Len() + 1
	}

	for result.Passes < maxPasses {
		before := result.Excluded.Len()
		state := d.pass(doc, result.Excluded)
		result.Passes++
		result.Sizes = append(result.Sizes, result.Excluded.Len())

		if !state.repeatFound || result.Excluded.Len() == before {
			break
		}
	}
	return result
}

func (d *Detector) pass(doc *domain.Document, excluded *domain.ExclusionSet) scanState {
	state := scanState{lastTitleIndex: noAnchor}

	for i, line := range doc.Lines {
		switch line.Kind {
		case domain.LineDirective:
			excluded.Add(i)

		case domain.LineSeparator:
			state.separatorCount++
			if state.separatorCount > prologueSeparators {
				excluded.Add(i)
				state.lastSeparatorIndex = i
			}

		case domain.LineHeader:
			if state.lastSeparatorIndex > 0 && state.lastTitleIndex != noAnchor {
				anchor := doc.Lines[state.lastTitleIndex].Title
				if Similarity(anchor, line.Title) > d.Threshold {
					excluded.Add(i)
				}
			}
			state.lastTitleIndex = i
		}

		if !state.repeatFound && state.lastTitleIndex != noAnchor && d.pendingRepeat(doc, excluded, state.lastTitleIndex) {
			state.repeatFound = true
		}
	}
	return state
}

// pendingRepeat reports whether a header after the anchor still matches it.
func (d *Detector) pendingRepeat(doc *domain.Document, excluded *domain.ExclusionSet, anchor int) bool {
	title := doc.Lines[anchor].Title
	for j := anchor + 1; j < doc.Len(); j++ {
		line := doc.Lines[j]
		if line.Kind != domain.LineHeader || excluded.Contains(j) {
			continue
		}
		if Similarity(title, line.Title) >= d.Threshold {
			return true
		}
	}
	return false
}
