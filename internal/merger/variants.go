package merger

import (
	"strings"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

// Variants holds the output lines of every variant.
type Variants map[domain.Variant][]string

// Join returns the lines of a variant, each terminated with eol.
func (v Variants) Join(variant domain.Variant, eol string) string {
	var b strings.Builder
	for _, line := range v[variant] {
		b.WriteString(line)
		b.WriteString(eol)
	}
	return b.String()
}

// BuildVariants renders the three variants from a classified document.
// Each line is transformed once and the result shared by every variant
// that keeps it. Malformed image links are reported as warnings.
func BuildVariants(doc *domain.Document, excluded *domain.ExclusionSet) (Variants, []error) {
	out := Variants{
		domain.VariantSite:     make([]string, 0, doc.Len()),
		domain.VariantDocument: make([]string, 0, doc.Len()),
		domain.VariantSlide:    make([]string, 0, doc.Len()),
	}
	var warnings []error

	for _, line := range doc.Lines {
		text := line.Text
		switch line.Kind {
		case domain.LineHeader:
			text = StripDisambiguator(text)
		case domain.LineImageLink:
			converted, err := ConvertImageLink(text)
			if err != nil {
				warnings = append(warnings, domain.NewStageError(doc.Path, domain.StageClassify, lineError(line.Index, err)))
			}
			text = converted
		}

		if !excluded.Contains(line.Index) {
			out[domain.VariantSite] = append(out[domain.VariantSite], text)
			out[domain.VariantDocument] = append(out[domain.VariantDocument], text)
		}
		out[domain.VariantSlide] = append(out[domain.VariantSlide], text)
	}
	return out, warnings
}
