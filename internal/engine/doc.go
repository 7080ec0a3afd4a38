// Package engine provides the in-memory document model: editable text with
// paragraph and span formatting.
//
// The engine package is the facade over several sub-packages:
//
//   - textrange: start/length ranges with an unbounded form
//   - ostree: an order-statistics red-black tree keyed by node sizes
//   - charbuf: the paged, append-only character store
//   - buffer: the piece table holding the document text
//   - property: formatting runs for paragraphs and spans
//   - enginerr: the shared error taxonomy
//
// Positions count Unicode code points.
//
// # Basic Usage
//
//	doc := engine.New(engine.WithContent("0123456789"))
//
//	// Insert after the character at position 9
//	_ = doc.Insert(9, "abcdef", false)
//
//	// Read a range
//	s, _ := doc.Text(textrange.New(2, 4)) // "2345"
//
//	// Delete a range
//	_ = doc.Delete(textrange.New(0, 10))
//	doc.String() // "abcdef"
//
// Insert positions name an existing character. By default new text goes
// after it; with before set it goes in front of it. Inserting at Len()
// appends.
//
// # Formatting
//
// Paragraphs end at '\n'. Each paragraph has one paragraph property; each
// character has one span property. Consecutive characters with the same span
// property form a run.
//
//	bold := property.Span(12, 700, "#000000", false, false)
//	_ = doc.FormatSpans(textrange.New(0, 3), bold)
//
//	heading := property.Paragraph(24, 700, 1.5, "#000000")
//	_ = doc.FormatParagraphs(textrange.New(0, 1), heading)
//
//	it := doc.Spans(textrange.From(0))
//	for it.HasNext() {
//	    run, err := it.Next()
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(run.Range, run.Property.FontWeight)
//	}
//
// Iterators are invalidated by the next edit; using one afterwards returns
// ErrConcurrentModification.
//
// # Configuration
//
// Configure the document at creation time:
//
//	doc := engine.New(
//	    engine.WithContent("initial"),
//	    engine.WithPageSize(4096),
//	    engine.WithLogger(logging.New("debug")),
//	)
//
// Or from a config file:
//
//	cfg, err := config.Load("docmodel.toml")
//	if err != nil {
//	    return err
//	}
//	doc := engine.New(engine.WithConfig(cfg))
//
// # Concurrency
//
// A Document is single-writer. It holds no locks; callers that share one
// across goroutines must serialize every call, reads included, since
// iterators and reads walk the same trees that edits rebalance.
package engine
