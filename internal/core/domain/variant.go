package domain

// Variant identifies one of the three merge outputs.
type Variant string

// Output variants.
const (
	// VariantSite feeds the static-site generator: deduplicated, no directives.
	VariantSite Variant = "site"

	// VariantDocument feeds the document converter: same filtering as Site.
	VariantDocument Variant = "document"

	// VariantSlide keeps the full slide structure for slide tooling.
	VariantSlide Variant = "slide"
)

// Variants lists every variant in output order.
func Variants() []Variant {
	return []Variant{VariantSite, VariantDocument, VariantSlide}
}

// IsValid returns true if the variant is recognised.
func (v Variant) IsValid() bool {
	switch v {
	case VariantSite, VariantDocument, VariantSlide:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (v Variant) String() string {
	return string(v)
}

// Filtered reports whether the variant drops excluded lines.
func (v Variant) Filtered() bool {
	return v == VariantSite || v == VariantDocument
}
