package merger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line     string
		expected domain.LineKind
	}{
		{"<!-- _backgroundColor: aqua -->", domain.LineDirective},
		{"  <!-- _color: red -->", domain.LineDirective},
		{"<!-- paginate: true -->", domain.LineDirective},
		{"# Title <!-- paginate: false -->", domain.LineDirective},
		{"---", domain.LineSeparator},
		{"  ---  ", domain.LineSeparator},
		{"----", domain.LinePlain},
		{"# Intro", domain.LineHeader},
		{"   ### Deep", domain.LineHeader},
		{`![alt:"x"](a.svg)`, domain.LineImageLink},
		{"![](a.png)", domain.LineImageLink},
		{"Some text", domain.LinePlain},
		{"", domain.LinePlain},
		{"<!-- note -->", domain.LinePlain},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyLine(tt.line))
		})
	}
}

func TestHeaderTitle(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{"# Intro", "intro"},
		{"## Intro  ", "intro"},
		{"# Networks (2)", "networks "},
		{"# Networks (12) part", "networks "},
		{"# Layers (a)", "layers (a)"},
		{"# C# Basics", "c basics"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, HeaderTitle(tt.line))
		})
	}
}

func TestStripDisambiguator(t *testing.T) {
	assert.Equal(t, "# Networks", StripDisambiguator("# Networks (2)"))
	assert.Equal(t, "## Intro", StripDisambiguator("## Intro"))
	assert.Equal(t, "# A (b)", StripDisambiguator("# A (b)"))
	assert.Equal(t, "# Title", StripDisambiguator("# Title (3) end"))
}

func TestClassify(t *testing.T) {
	doc := Classify("deck.md", []string{"# A", "---", "text"})

	require.Equal(t, 3, doc.Len())
	assert.Equal(t, "deck.md", doc.Path)
	assert.Equal(t, domain.LineHeader, doc.Lines[0].Kind)
	assert.Equal(t, "a", doc.Lines[0].Title)
	assert.Equal(t, domain.LineSeparator, doc.Lines[1].Kind)
	assert.Equal(t, 2, doc.Lines[2].Index)
}
