package merger

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

const (
	sourceImageExt = ".svg"
	targetImageExt = ".jpeg"
)

// imageLinkPattern matches one `![attrs](url){pandoc attrs}` link at the start of its input.
// Brackets and parentheses cannot nest, so several links on a line stay apart.
var imageLinkPattern = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]*)\)(\{[^}]*\})?`)

// imageAttrs holds the recognised Marp image attributes.
type imageAttrs struct {
	alt    string
	width  string
	height string
	center bool
}

func (a imageAttrs) empty() bool {
	return a.alt == "" && a.width == "" && a.height == "" && !a.center
}

// pandoc renders the attribute block body.
func (a imageAttrs) pandoc() string {
	var parts []string
	if a.width != "" {
		parts = append(parts, "width="+a.width)
	}
	if a.height != "" {
		parts = append(parts, "height="+a.height)
	}
	if a.center {
		parts = append(parts, "align=center")
	}
	return strings.Join(parts, " ")
}

// ConvertImageLink rewrites the Marp image links of a line into Pandoc attribute syntax.
//
// A line may hold several links separated by whitespace; each is converted on its own.
// Links already carrying a Pandoc attribute block and links without recognised
// attributes are kept as written. A line that does not parse as a sequence of image
// links is returned unchanged with an error wrapping domain.ErrInvalidDocument.
func ConvertImageLink(line string) (string, error) {
	trimmed := strings.TrimSpace(line)
	indent := line[:strings.Index(line, trimmed)]

	var out strings.Builder
	out.WriteString(indent)
	rest := trimmed
	for rest != "" {
		m := imageLinkPattern.FindStringSubmatch(rest)
		if m == nil {
			return line, fmt.Errorf("malformed image link %q: %w", trimmed, domain.ErrInvalidDocument)
		}
		out.WriteString(convertLink(m))

		rest = rest[len(m[0]):]
		next := strings.TrimLeft(rest, " \t")
		out.WriteString(rest[:len(rest)-len(next)])
		rest = next
	}
	return out.String(), nil
}

// convertLink renders one matched link: whole match, attrs, url, pandoc block.
func convertLink(m []string) string {
	if m[3] != "" {
		return m[0]
	}
	attrs := parseImageAttrs(m[1])
	if attrs.empty() {
		return m[0]
	}

	url := strings.TrimSpace(strings.ReplaceAll(m[2], sourceImageExt, targetImageExt))
	alt := ""
	if attrs.alt != "" {
		alt = `"` + attrs.alt + `"`
	}
	return fmt.Sprintf("![%s](%s){%s}", alt, url, attrs.pandoc())
}

func parseImageAttrs(raw string) imageAttrs {
	var attrs imageAttrs
	for _, token := range splitAttrTokens(raw) {
		key, value, ok := strings.Cut(token, ":")
		if !ok {
			if strings.EqualFold(token, "center") {
				attrs.center = true
			}
			continue
		}
		value = strings.Trim(value, `"`)
		switch strings.ToLower(key) {
		case "alt":
			attrs.alt = value
		case "width", "w":
			attrs.width = value
		case "height", "h":
			attrs.height = value
		}
	}
	return attrs
}

// splitAttrTokens splits on whitespace outside double quotes.
func splitAttrTokens(raw string) []string {
	var (
		tokens  []string
		current strings.Builder
		quoted  bool
	)
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	for _, r := range raw {
		switch {
		case r == '"':
			quoted = !quoted
			current.WriteRune(r)
		case (r == ' ' || r == '\t') && !quoted:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}
