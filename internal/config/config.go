package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/docmodel/internal/config/loader"
	"github.com/dshills/docmodel/internal/engine/charbuf"
	"github.com/dshills/docmodel/internal/engine/property"
	"github.com/dshills/docmodel/internal/logging"
)

// Config holds the document model settings.
type Config struct {
	// PageSize is the capacity, in characters, of each character buffer page.
	PageSize int
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// Paragraph is the property of paragraphs in a new document.
	Paragraph PropertyConfig
	// Span is the property of text in a new document.
	Span PropertyConfig
}

// PropertyConfig holds the attributes of a default property.
type PropertyConfig struct {
	FontSize   int
	FontWeight int
	LineHeight float64
	Color      string
	Italic     bool
	Underline  bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		PageSize: charbuf.DefaultPageSize,
		LogLevel: "info",
		Paragraph: PropertyConfig{
			FontSize:   12,
			FontWeight: 400,
			LineHeight: 1.2,
			Color:      "#000000",
		},
		Span: PropertyConfig{
			FontSize:   12,
			FontWeight: 400,
			Color:      "#000000",
		},
	}
}

// ParagraphProperty returns the default paragraph property.
func (c Config) ParagraphProperty() property.Property {
	p := c.Paragraph
	return property.Paragraph(p.FontSize, p.FontWeight, p.LineHeight, p.Color)
}

// SpanProperty returns the default span property.
func (c Config) SpanProperty() property.Property {
	p := c.Span
	return property.Span(p.FontSize, p.FontWeight, p.Color, p.Italic, p.Underline)
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, path, msg string, value any) {
		if !ok {
			errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
		}
	}

	check(c.PageSize > 0, keyPageSize, "must be positive", c.PageSize)
	check(logging.ValidLevel(c.LogLevel), keyLogLevel, "must be debug, info, warn, or error", c.LogLevel)
	for section, p := range map[string]PropertyConfig{sectionParagraph: c.Paragraph, sectionSpan: c.Span} {
		check(p.FontSize > 0, section+"."+keyFontSize, "must be positive", p.FontSize)
		check(p.FontWeight >= 1 && p.FontWeight <= 1000, section+"."+keyFontWeight, "must be between 1 and 1000", p.FontWeight)
		check(p.LineHeight >= 0, section+"."+keyLineHeight, "must not be negative", p.LineHeight)
	}

	sort.Slice(errs, func(i, j int) bool {
		return errs[i].(*ValidationError).Path < errs[j].(*ValidationError).Path
	})
	return errors.Join(errs...)
}

// Setting keys as they appear in config files.
const (
	keyPageSize      = "page_size"
	keyLogLevel      = "log_level"
	sectionParagraph = "paragraph"
	sectionSpan      = "span"
	keyFontSize      = "font_size"
	keyFontWeight    = "font_weight"
	keyLineHeight    = "line_height"
	keyColor         = "color"
	keyItalic        = "italic"
	keyUnderline     = "underline"
)

// ToMap returns c in the key layout used by config files.
func (c Config) ToMap() map[string]any {
	return map[string]any{
		keyPageSize:      c.PageSize,
		keyLogLevel:      c.LogLevel,
		sectionParagraph: c.Paragraph.toMap(),
		sectionSpan:      c.Span.toMap(),
	}
}

func (p PropertyConfig) toMap() map[string]any {
	return map[string]any{
		keyFontSize:   p.FontSize,
		keyFontWeight: p.FontWeight,
		keyLineHeight: p.LineHeight,
		keyColor:      p.Color,
		keyItalic:     p.Italic,
		keyUnderline:  p.Underline,
	}
}

// FromMap decodes a configuration map. Keys missing from m keep their
// default values; unknown keys are rejected.
func FromMap(m map[string]any) (Config, error) {
	merged := loader.DeepMerge(Default().ToMap(), loader.Clone(m))
	d := decoder{m: merged}

	cfg := Config{
		PageSize:  d.getInt(keyPageSize),
		LogLevel:  d.getString(keyLogLevel),
		Paragraph: d.property(sectionParagraph),
		Span:      d.property(sectionSpan),
	}
	d.unknown(merged, "")
	if len(d.errs) > 0 {
		return Config{}, errors.Join(d.errs...)
	}
	return cfg, nil
}

var knownKeys = map[string]bool{
	keyPageSize:      true,
	keyLogLevel:      true,
	sectionParagraph: true,
	sectionSpan:      true,
}

var knownPropertyKeys = map[string]bool{
	keyFontSize:   true,
	keyFontWeight: true,
	keyLineHeight: true,
	keyColor:      true,
	keyItalic:     true,
	keyUnderline:  true,
}

// decoder collects every error instead of stopping at the first.
type decoder struct {
	m    map[string]any
	errs []error
}

func (d *decoder) property(section string) PropertyConfig {
	return PropertyConfig{
		FontSize:   d.getInt(section + "." + keyFontSize),
		FontWeight: d.getInt(section + "." + keyFontWeight),
		LineHeight: d.getFloat(section + "." + keyLineHeight),
		Color:      d.getString(section + "." + keyColor),
		Italic:     d.getBool(section + "." + keyItalic),
		Underline:  d.getBool(section + "." + keyUnderline),
	}
}

func (d *decoder) getInt(path string) int {
	v, _ := getPath(d.m, path)
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case uint64:
		return int(val)
	case float64:
		if val == float64(int(val)) {
			return int(val)
		}
	}
	d.errs = append(d.errs, &TypeError{Path: path, Expected: "int", Actual: typeName(v)})
	return 0
}

func (d *decoder) getFloat(path string) float64 {
	v, _ := getPath(d.m, path)
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	}
	d.errs = append(d.errs, &TypeError{Path: path, Expected: "float64", Actual: typeName(v)})
	return 0
}

func (d *decoder) getString(path string) string {
	v, _ := getPath(d.m, path)
	if s, ok := v.(string); ok {
		return s
	}
	d.errs = append(d.errs, &TypeError{Path: path, Expected: "string", Actual: typeName(v)})
	return ""
}

func (d *decoder) getBool(path string) bool {
	v, _ := getPath(d.m, path)
	if b, ok := v.(bool); ok {
		return b
	}
	d.errs = append(d.errs, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)})
	return false
}

func (d *decoder) unknown(m map[string]any, prefix string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch {
		case prefix == "" && knownKeys[k]:
			if k == sectionParagraph || k == sectionSpan {
				if sub, ok := m[k].(map[string]any); ok {
					d.unknown(sub, k)
				} else {
					d.errs = append(d.errs, &TypeError{Path: k, Expected: "map", Actual: typeName(m[k])})
				}
			}
		case prefix != "" && knownPropertyKeys[k]:
		default:
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			d.errs = append(d.errs, fmt.Errorf("%s: %w", path, ErrUnknownSetting))
		}
	}
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	current := any(m)
	for _, part := range strings.Split(path, ".") {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = cm[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64, uint64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return fmt.Sprintf("%T", v)
	}
}
