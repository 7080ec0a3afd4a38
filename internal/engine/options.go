package engine

import (
	"github.com/charmbracelet/log"

	"github.com/dshills/docmodel/internal/config"
	"github.com/dshills/docmodel/internal/engine/charbuf"
	"github.com/dshills/docmodel/internal/engine/property"
)

// DefaultPageSize is the character buffer page capacity.
const DefaultPageSize = charbuf.DefaultPageSize

// DefaultParagraph returns the paragraph property of a new document.
func DefaultParagraph() property.Property {
	return config.Default().ParagraphProperty()
}

// DefaultSpan returns the span property of a new document.
func DefaultSpan() property.Property {
	return config.Default().SpanProperty()
}

// Option configures a Document during creation.
type Option func(*Document)

// WithContent sets the initial content of the document.
func WithContent(content string) Option {
	return func(d *Document) {
		d.initContent = content
	}
}

// WithLogger sets the logger edits are reported to.
func WithLogger(logger *log.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithPageSize sets the page capacity of the character buffer.
func WithPageSize(size int) Option {
	return func(d *Document) {
		if size > 0 {
			d.pageSize = size
		}
	}
}

// WithParagraphDefault sets the paragraph property used for new content.
// Properties of another kind are ignored.
func WithParagraphDefault(p property.Property) Option {
	return func(d *Document) {
		if p.Kind == property.KindParagraph {
			d.paragraphDefault = p
		}
	}
}

// WithSpanDefault sets the span property used for new content.
// Properties of another kind are ignored.
func WithSpanDefault(p property.Property) Option {
	return func(d *Document) {
		if p.Kind == property.KindSpan {
			d.spanDefault = p
		}
	}
}

// WithConfig applies a loaded configuration: page size and default
// properties. Unless WithLogger supplies a logger, in any order, the
// document logs to stderr at the configured level.
func WithConfig(cfg config.Config) Option {
	return func(d *Document) {
		WithPageSize(cfg.PageSize)(d)
		WithParagraphDefault(cfg.ParagraphProperty())(d)
		WithSpanDefault(cfg.SpanProperty())(d)
		d.logLevel = cfg.LogLevel
	}
}
