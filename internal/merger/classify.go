package merger

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

const (
	separatorToken = "---"
	headerMarker   = "#"
	imageToken     = "!["
)

// directiveMarkers are matched against the lower-cased line.
var directiveMarkers = []string{
	"<!-- _backgroundcolor:",
	"<!-- _color:",
	"<!-- paginate:",
}

// disambiguatorPattern matches a trailing "(N)" and anything after it that holds no parentheses.
var disambiguatorPattern = regexp.MustCompile(`\((\d+)\)[^()]*$`)

// ClassifyLine returns the kind of a single raw line.
func ClassifyLine(text string) domain.LineKind {
	work := strings.ToLower(strings.TrimSpace(text))

	for _, marker := range directiveMarkers {
		if strings.Contains(work, marker) {
			return domain.LineDirective
		}
	}

	switch {
	case work == separatorToken:
		return domain.LineSeparator
	case strings.HasPrefix(work, headerMarker):
		return domain.LineHeader
	case strings.HasPrefix(work, imageToken):
		return domain.LineImageLink
	default:
		return domain.LinePlain
	}
}

// HeaderTitle returns the comparable title of a line: header markers removed,
// lower-cased, trimmed, then the first trailing disambiguator removed.
func HeaderTitle(text string) string {
	title := strings.TrimSpace(strings.ToLower(strings.ReplaceAll(text, headerMarker, "")))
	return replaceFirst(disambiguatorPattern, title, "")
}

// StripDisambiguator removes a trailing "(N)" from a header line.
func StripDisambiguator(text string) string {
	return strings.TrimRight(replaceFirst(disambiguatorPattern, text, ""), " \t")
}

// Classify builds a classified document from raw lines.
func Classify(path string, lines []string) *domain.Document {
	doc := &domain.Document{
		Path:  path,
		Lines: make([]domain.Line, len(lines)),
	}
	for i, text := range lines {
		doc.Lines[i] = domain.Line{
			Index: i,
			Text:  text,
			Kind:  ClassifyLine(text),
			Title: HeaderTitle(text),
		}
	}
	return doc
}

func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}
