// Package outline extracts the heading structure of Markdown text.
package outline

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

// Extract returns every top-level heading of src in document order.
func Extract(src []byte) []domain.Heading {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var headings []domain.Heading
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		node, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		title := strings.TrimSpace(string(node.Text(src)))
		if title == "" {
			continue
		}
		headings = append(headings, domain.Heading{Level: node.Level, Title: title})
	}
	return headings
}

// Title returns the first level-one heading, falling back to the first heading of any level.
func Title(src []byte) string {
	headings := Extract(src)
	for _, h := range headings {
		if h.Level == 1 {
			return h.Title
		}
	}
	if len(headings) > 0 {
		return headings[0].Title
	}
	return ""
}

// Render formats headings as an indented list.
func Render(headings []domain.Heading) string {
	var b strings.Builder
	for _, h := range headings {
		b.WriteString(strings.Repeat("  ", h.Level-1))
		b.WriteString("- ")
		b.WriteString(h.Title)
		b.WriteString("\n")
	}
	return b.String()
}
