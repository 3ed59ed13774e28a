package domain

import (
	"runtime"
	"time"
)

// DefaultSimilarityThreshold is the score a header pair must exceed to count as duplicate.
const DefaultSimilarityThreshold = 0.999

// PrefixSettings holds the file name prefix of each output variant.
type PrefixSettings struct {
	// Site prefixes the static-site variant.
	Site string

	// Document prefixes the document converter variant.
	Document string

	// Slide prefixes the slide variant.
	Slide string
}

// For returns the prefix of the given variant.
func (p PrefixSettings) For(v Variant) string {
	switch v {
	case VariantSite:
		return p.Site
	case VariantDocument:
		return p.Document
	case VariantSlide:
		return p.Slide
	default:
		return ""
	}
}

// All returns every configured prefix.
func (p PrefixSettings) All() []string {
	return []string{p.Site, p.Document, p.Slide}
}

// MergeSettings holds duplicate detection configuration.
type MergeSettings struct {
	// Threshold is the similarity score a later header must exceed to be excluded.
	Threshold float64

	// MaxPasses caps the detector fixed-point loop.
	// Zero means the number of lines plus one.
	MaxPasses int
}

// ToolSettings holds external executable names.
type ToolSettings struct {
	// Marp is the slide renderer.
	Marp string

	// Pandoc is the document converter.
	Pandoc string

	// MkDocs is the static-site generator.
	MkDocs string

	// Drawio is the diagram exporter.
	Drawio string

	// ReferenceDoc is the Pandoc reference document used for PPTX output.
	ReferenceDoc string
}

// LaunchSettings throttles external process launches.
type LaunchSettings struct {
	// Rate is the number of launches allowed per second.
	Rate float64

	// Burst is the number of launches allowed at once.
	Burst int
}

// HistorySettings controls merge run recording.
type HistorySettings struct {
	// Enabled records every merge in the history store.
	Enabled bool
}

// Settings holds all application settings.
type Settings struct {
	Prefixes PrefixSettings
	Merge    MergeSettings
	Tools    ToolSettings
	Launch   LaunchSettings
	History  HistorySettings
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	drawio := "drawio"
	if runtime.GOOS == "windows" {
		drawio = `C:\Program Files\draw.io\draw.io.exe`
	}
	return Settings{
		Prefixes: PrefixSettings{
			Site:     "site_",
			Document: "document_",
			Slide:    "slide_",
		},
		Merge: MergeSettings{
			Threshold: DefaultSimilarityThreshold,
		},
		Tools: ToolSettings{
			Marp:   "marp",
			Pandoc: "pandoc",
			MkDocs: "mkdocs",
			Drawio: drawio,
		},
		Launch: LaunchSettings{
			Rate:  4,
			Burst: 2,
		},
		History: HistorySettings{
			Enabled: true,
		},
	}
}

// LaunchInterval returns the minimum spacing between launches, or zero when unthrottled.
func (l LaunchSettings) LaunchInterval() time.Duration {
	if l.Rate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / l.Rate)
}
