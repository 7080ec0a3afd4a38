package property

// Value is the capability every run property provides.
type Value[P any] interface {
	// IsSame reports whether two properties format text identically.
	IsSame(other P) bool
	// Clone returns an independent copy.
	Clone() P
}

// Kind selects which attributes of a Property are meaningful.
type Kind uint8

const (
	KindNone Kind = iota
	KindParagraph
	KindSpan
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindSpan:
		return "span"
	default:
		return "none"
	}
}

// Property is a formatting attribute set. Paragraph properties use the font
// and line attributes; span properties additionally use Italic and Underline.
type Property struct {
	Kind       Kind
	FontSize   int
	FontWeight int
	LineHeight float64
	Color      string
	Italic     bool
	Underline  bool
}

// Paragraph creates a paragraph-level property.
func Paragraph(fontSize, fontWeight int, lineHeight float64, color string) Property {
	return Property{
		Kind:       KindParagraph,
		FontSize:   fontSize,
		FontWeight: fontWeight,
		LineHeight: lineHeight,
		Color:      color,
	}
}

// Span creates a span-level property.
func Span(fontSize, fontWeight int, color string, italic, underline bool) Property {
	return Property{
		Kind:       KindSpan,
		FontSize:   fontSize,
		FontWeight: fontWeight,
		Color:      color,
		Italic:     italic,
		Underline:  underline,
	}
}

// IsSame reports whether p and other format text identically.
func (p Property) IsSame(other Property) bool {
	if p.Kind != other.Kind {
		return false
	}
	same := p.FontSize == other.FontSize &&
		p.FontWeight == other.FontWeight &&
		p.Color == other.Color
	switch p.Kind {
	case KindParagraph:
		return same && p.LineHeight == other.LineHeight
	case KindSpan:
		return same && p.Italic == other.Italic && p.Underline == other.Underline
	default:
		return true
	}
}

// Clone returns a copy of p.
func (p Property) Clone() Property {
	return p
}
