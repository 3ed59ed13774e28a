package domain

// LineKind classifies a single Markdown line.
// A line holds exactly one kind.
type LineKind int

// Line kinds, in classification priority order.
const (
	// LinePlain is ordinary content passed through unchanged.
	LinePlain LineKind = iota

	// LineDirective is a slide-only presentation comment
	// (background colour, text colour, pagination).
	LineDirective

	// LineSeparator is the `---` page separator.
	LineSeparator

	// LineHeader is an ATX header line.
	LineHeader

	// LineImageLink is an image link in Marp syntax.
	LineImageLink
)

// String returns the kind name used in diagnostics.
func (k LineKind) String() string {
	switch k {
	case LineDirective:
		return "directive"
	case LineSeparator:
		return "separator"
	case LineHeader:
		return "header"
	case LineImageLink:
		return "image"
	default:
		return "plain"
	}
}

// Line is a raw line with its derived classification.
type Line struct {
	// Index is the zero-based line number in the document.
	Index int

	// Text is the original line, preserved for output.
	Text string

	// Kind is the classification of the line.
	Kind LineKind

	// Title is the normalized comparable header title.
	// It is computed for every line so any index can act as a comparison anchor.
	Title string
}

// Document is the ordered line sequence of one input file.
type Document struct {
	// Path is the input file the lines were read from.
	Path string

	// Lines holds every line in file order.
	Lines []Line
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.Lines)
}

// MarshalText encodes the kind by name.
func (k LineKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
