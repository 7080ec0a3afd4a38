package engine

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/rivo/uniseg"

	"github.com/dshills/docmodel/internal/engine/buffer"
	"github.com/dshills/docmodel/internal/engine/property"
	"github.com/dshills/docmodel/internal/engine/textrange"
	"github.com/dshills/docmodel/internal/logging"
)

// Re-export commonly used types for convenience.
type (
	// Range is a span of character positions.
	Range = textrange.Range

	// Property is a paragraph or span formatting attribute set.
	Property = property.Property

	// Run is a span of positions sharing one property.
	Run = property.Run[property.Property]

	// Iterator walks the runs of a paragraph or span list.
	Iterator = property.Iterator[property.Property]
)

// Re-export constants.
const (
	KindParagraph = property.KindParagraph
	KindSpan      = property.KindSpan
)

// Document is an editable text with paragraph and span formatting.
//
// The text lives in a piece table and each kind of formatting in its own
// run list; every edit updates all three so that they always cover the same
// positions. A Document is not safe for concurrent use: callers serialize
// access.
type Document struct {
	id         uuid.UUID
	text       *buffer.Buffer
	paragraphs *property.ParagraphList
	spans      *property.SpanList
	logger     *log.Logger
	logLevel   string

	// Configuration
	pageSize         int
	paragraphDefault property.Property
	spanDefault      property.Property

	// Initialization
	initContent string
}

// New creates a document with the given options.
func New(opts ...Option) *Document {
	d := newDocument(opts)
	if err := d.load(d.initContent); err != nil {
		// Loading into an empty document cannot fail.
		d.logger.Error("load initial content", logging.FieldError, err)
	}
	return d
}

// NewFromReader creates a document holding everything read from r.
func NewFromReader(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("reading content: not valid UTF-8: %w", ErrInvalidArgument)
	}
	d := newDocument(opts)
	if err := d.load(string(data)); err != nil {
		return nil, err
	}
	return d, nil
}

func newDocument(opts []Option) *Document {
	d := &Document{
		id:               uuid.New(),
		pageSize:         DefaultPageSize,
		paragraphDefault: DefaultParagraph(),
		spanDefault:      DefaultSpan(),
	}
	for _, opt := range opts {
		opt(d)
	}
	switch {
	case d.logger != nil:
	case d.logLevel != "":
		d.logger = logging.New(d.logLevel)
	default:
		d.logger = logging.Default()
	}
	d.logger = d.logger.With(logging.FieldDocument, d.id.String())
	return d
}

// load seeds the piece table and both run lists with content.
func (d *Document) load(content string) error {
	d.text = buffer.New(content, buffer.WithPageSize(d.pageSize))
	d.paragraphs = property.NewParagraphList()
	d.spans = property.NewSpanList()

	n := d.text.Len()
	if n == 0 {
		return nil
	}
	r := textrange.New(0, n)
	if err := d.paragraphs.OnInsert(r, content, d.paragraphDefault); err != nil {
		return err
	}
	if err := d.spans.Init(n, d.spanDefault); err != nil {
		return err
	}
	d.logger.Debug("load",
		logging.FieldLength, n,
		logging.FieldPieces, d.text.PieceCount(),
		logging.FieldRuns, d.paragraphs.RunCount(),
	)
	return nil
}

// ID returns the identity of the document, stable for its lifetime.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Len returns the document length in characters.
func (d *Document) Len() int {
	return d.text.Len()
}

// IsEmpty reports whether the document has no characters.
func (d *Document) IsEmpty() bool {
	return d.text.IsEmpty()
}

// String returns the whole text.
func (d *Document) String() string {
	return d.text.String()
}

// Text returns the characters in r. A range running past the end is clipped.
func (d *Document) Text(r Range) (string, error) {
	return d.text.GetText(r)
}

// CharAt returns the character at pos.
func (d *Document) CharAt(pos int) (rune, error) {
	s, err := d.text.GetText(textrange.New(pos, 1))
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, newPositionError("char at", pos, ErrOutOfRange)
	}
	ch, _ := utf8.DecodeRuneInString(s)
	return ch, nil
}

// GraphemeCount returns the number of user-perceived characters in r.
// Combining sequences and emoji with modifiers count once.
func (d *Document) GraphemeCount(r Range) (int, error) {
	s, err := d.text.GetText(r)
	if err != nil {
		return 0, err
	}
	return uniseg.GraphemeClusterCount(s), nil
}

// Insert adds content next to the character at pos: after it by default, or
// in front of it when before is true. pos == Len() appends. The new text
// takes the span property of the text before it.
func (d *Document) Insert(pos int, content string, before bool) error {
	span := d.spanDefault
	// Inherit from the preceding character, or the first one at the start.
	if at := d.insertionStart(pos, before); at > 0 && at <= d.Len() {
		run, err := d.spans.At(at - 1)
		if err != nil {
			return err
		}
		span = run.Property
	} else if !d.spans.IsEmpty() {
		run, err := d.spans.At(0)
		if err != nil {
			return err
		}
		span = run.Property
	}
	return d.InsertStyled(pos, content, before, span)
}

// InsertStyled is Insert with an explicit span property for the new text.
func (d *Document) InsertStyled(pos int, content string, before bool, span Property) error {
	if span.Kind != property.KindSpan {
		return fmt.Errorf("insert: property kind %s: %w", span.Kind, ErrInvalidArgument)
	}
	n := utf8.RuneCountInString(content)
	if n == 0 {
		return nil
	}
	start := d.insertionStart(pos, before)
	if err := d.text.Insert(pos, content, before); err != nil {
		return err
	}

	r := textrange.New(start, n)
	if err := d.paragraphs.OnInsert(r, content, d.paragraphDefault); err != nil {
		return fmt.Errorf("insert paragraphs: %w", err)
	}
	if err := d.spans.OnInsert(r, span); err != nil {
		return fmt.Errorf("insert spans: %w", err)
	}

	d.logEdit("insert", r)
	return nil
}

// insertionStart returns the position the first inserted character will
// occupy.
func (d *Document) insertionStart(pos int, before bool) int {
	if before || pos >= d.Len() {
		return pos
	}
	return pos + 1
}

// Delete removes the characters in r. A range running past the end is
// clipped, and an empty range is a no-op.
func (d *Document) Delete(r Range) error {
	if r.IsEmpty() {
		return nil
	}
	if err := d.text.Delete(r); err != nil {
		return err
	}
	if err := d.paragraphs.OnDelete(r); err != nil {
		return fmt.Errorf("delete paragraphs: %w", err)
	}
	if err := d.spans.OnDelete(r); err != nil {
		return fmt.Errorf("delete spans: %w", err)
	}

	d.logEdit("delete", r)
	return nil
}

// Replace deletes r and inserts content where it started.
func (d *Document) Replace(r Range, content string) error {
	if r.IsEmpty() {
		return d.Insert(r.Start, content, true)
	}
	first, err := d.spans.At(r.Start)
	if err != nil {
		return err
	}
	if err := d.Delete(r); err != nil {
		return err
	}
	return d.InsertStyled(r.Start, content, true, first.Property)
}

// FormatParagraphs gives every paragraph intersecting r the property prop.
func (d *Document) FormatParagraphs(r Range, prop Property) error {
	if prop.Kind != property.KindParagraph {
		return fmt.Errorf("format paragraphs: property kind %s: %w", prop.Kind, ErrInvalidArgument)
	}
	if err := d.paragraphs.OnModify(r, prop); err != nil {
		return err
	}
	d.logEdit("format paragraphs", r)
	return nil
}

// FormatSpans gives the characters in r the property prop.
func (d *Document) FormatSpans(r Range, prop Property) error {
	if prop.Kind != property.KindSpan {
		return fmt.Errorf("format spans: property kind %s: %w", prop.Kind, ErrInvalidArgument)
	}
	if err := d.spans.OnModify(r, prop); err != nil {
		return err
	}
	d.logEdit("format spans", r)
	return nil
}

// Paragraphs returns an iterator over the paragraphs intersecting limit.
// The iterator is invalidated by the next edit.
func (d *Document) Paragraphs(limit Range) *Iterator {
	return d.paragraphs.CreateIterator(limit)
}

// Spans returns an iterator over the span runs intersecting limit.
// The iterator is invalidated by the next edit.
func (d *Document) Spans(limit Range) *Iterator {
	return d.spans.CreateIterator(limit)
}

// ParagraphAt returns the paragraph containing pos.
func (d *Document) ParagraphAt(pos int) (Run, error) {
	return d.paragraphs.At(pos)
}

// SpanAt returns the span run containing pos.
func (d *Document) SpanAt(pos int) (Run, error) {
	return d.spans.At(pos)
}

// ParagraphCount returns the number of paragraphs.
func (d *Document) ParagraphCount() int {
	return d.paragraphs.RunCount()
}

// PieceCount returns the number of pieces in the piece table.
func (d *Document) PieceCount() int {
	return d.text.PieceCount()
}

// Validate checks the invariants of the piece table and both run lists and
// that all three cover the same positions.
func (d *Document) Validate() error {
	if err := d.text.Validate(); err != nil {
		return fmt.Errorf("text: %w", err)
	}
	if err := d.paragraphs.Validate(); err != nil {
		return fmt.Errorf("paragraphs: %w", err)
	}
	if err := d.spans.Validate(); err != nil {
		return fmt.Errorf("spans: %w", err)
	}
	n := d.text.Len()
	if p, s := d.paragraphs.TotalSize(), d.spans.TotalSize(); p != n || s != n {
		return fmt.Errorf("text has %d characters, paragraphs cover %d, spans cover %d: %w", n, p, s, ErrInvalidArgument)
	}
	return nil
}

func (d *Document) logEdit(op string, r Range) {
	length := r.Length
	if r.IsInfinite() {
		length = -1
	}
	d.logger.Debug("edit",
		logging.FieldOp, op,
		logging.FieldPos, r.Start,
		logging.FieldLength, length,
		logging.FieldPieces, d.text.PieceCount(),
		logging.FieldRuns, d.spans.RunCount(),
	)
}
