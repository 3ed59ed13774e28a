package merger

import (
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

// prologueBounds returns the indices of the two separators enclosing the
// configuration prologue. ok is false unless the deck opens with a separator,
// blank lines aside, and has a second one.
func prologueBounds(doc *domain.Document) (open, closing int, ok bool) {
	open = -1
	for _, line := range doc.Lines {
		if line.Kind == domain.LineSeparator {
			if open < 0 {
				open = line.Index
				continue
			}
			return open, line.Index, true
		}
		if open < 0 && strings.TrimSpace(line.Text) != "" {
			return 0, 0, false
		}
	}
	return 0, 0, false
}

// PrologueEnd returns the index of the first line after the prologue, or 0 if there is none.
func PrologueEnd(doc *domain.Document) int {
	_, closing, ok := prologueBounds(doc)
	if !ok {
		return 0
	}
	return closing + 1
}

// ReadPrologue decodes the YAML block between the first two separators.
// It returns nil when the deck does not open with a separator, has fewer than
// two separators or the block is empty.
func ReadPrologue(doc *domain.Document) (*domain.Prologue, error) {
	open, closing, ok := prologueBounds(doc)
	if !ok || closing-open < 2 {
		return nil, nil
	}

	var b strings.Builder
	b.WriteString("---\n")
	for _, line := range doc.Lines[open+1 : closing] {
		b.WriteString(line.Text)
		b.WriteString("\n")
	}
	b.WriteString("---\n")

	var prologue domain.Prologue
	if _, err := frontmatter.Parse(strings.NewReader(b.String()), &prologue); err != nil {
		return nil, fmt.Errorf("parse prologue: %v: %w", err, domain.ErrInvalidDocument)
	}
	if prologue.IsEmpty() {
		return nil, nil
	}
	return &prologue, nil
}
