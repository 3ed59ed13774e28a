package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestDefaultSettings tests default values
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "site_", s.Prefixes.Site)
	assert.Equal(t, "document_", s.Prefixes.Document)
	assert.Equal(t, "slide_", s.Prefixes.Slide)
	assert.InDelta(t, 0.999, s.Merge.Threshold, 1e-9)
	assert.Zero(t, s.Merge.MaxPasses)
	assert.Equal(t, "marp", s.Tools.Marp)
	assert.Equal(t, "pandoc", s.Tools.Pandoc)
	assert.Equal(t, "mkdocs", s.Tools.MkDocs)
	assert.NotEmpty(t, s.Tools.Drawio)
	assert.True(t, s.History.Enabled)
}

// TestPrefixSettings_For tests prefix lookup per variant
func TestPrefixSettings_For(t *testing.T) {
	p := DefaultSettings().Prefixes

	assert.Equal(t, "site_", p.For(VariantSite))
	assert.Equal(t, "document_", p.For(VariantDocument))
	assert.Equal(t, "slide_", p.For(VariantSlide))
	assert.Empty(t, p.For(Variant("other")))
	assert.Equal(t, []string{"site_", "document_", "slide_"}, p.All())
}

// TestLaunchSettings_LaunchInterval tests throttle spacing
func TestLaunchSettings_LaunchInterval(t *testing.T) {
	assert.Equal(t, 250*time.Millisecond, LaunchSettings{Rate: 4}.LaunchInterval())
	assert.Zero(t, LaunchSettings{}.LaunchInterval())
}

// TestBatchResult_OK tests partial-failure aggregation
func TestBatchResult_OK(t *testing.T) {
	b := &BatchResult{
		Results: []*MergeResult{
			{Input: "a.md"},
			{Input: "index.en.md", Skipped: true},
		},
	}
	assert.True(t, b.OK())
	assert.Equal(t, 1, b.Merged())
	assert.Equal(t, 1, b.Skipped())

	b.Failures = append(b.Failures, FileFailure{Path: "b.md", Err: ErrInputUnreadable})
	assert.False(t, b.OK())
}

// TestPrologue_IsEmpty tests empty prologue detection
func TestPrologue_IsEmpty(t *testing.T) {
	var p *Prologue
	assert.True(t, p.IsEmpty())
	assert.True(t, (&Prologue{}).IsEmpty())
	assert.False(t, (&Prologue{Title: "Intro"}).IsEmpty())
}

// TestCommand tests command display helpers
func TestCommand(t *testing.T) {
	c := Command{Args: []string{"mkdocs", "gh-deploy", "--force"}}
	assert.Equal(t, "mkdocs", c.Name())
	assert.Equal(t, "mkdocs gh-deploy --force", c.String())
	assert.Empty(t, Command{}.Name())
}
