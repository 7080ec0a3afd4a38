package loader

import (
	"os"
	"strconv"
	"strings"
)

// DefaultEnvPrefix is the prefix of the variables read by NewEnvLoader.
const DefaultEnvPrefix = "DOCMODEL_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix   string            // e.g. "DOCMODEL_"
	mapping  map[string]string // env var -> config path
	verbatim map[string]bool   // config paths whose values are never converted
	environ  func() []string
}

// NewEnvLoader creates an environment loader for variables starting with
// prefix, which should include the trailing underscore. Values for the
// config paths in stringPaths are kept verbatim; all others are converted
// by parseValue.
func NewEnvLoader(prefix string, stringPaths ...string) *EnvLoader {
	l := &EnvLoader{
		prefix:   prefix,
		mapping:  defaultEnvMapping(prefix),
		verbatim: make(map[string]bool, len(stringPaths)),
		environ:  os.Environ,
	}
	for _, p := range stringPaths {
		l.verbatim[p] = true
	}
	return l
}

// Top-level keys contain underscores, so they cannot be derived from the
// variable name.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "PAGE_SIZE": "page_size",
		prefix + "LOG_LEVEL": "log_level",
	}
}

// Load reads the environment and returns a configuration map. Empty values
// count as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			if !strings.HasPrefix(name, l.prefix) {
				continue
			}
			// DOCMODEL_PARAGRAPH_FONT_SIZE becomes paragraph.font_size.
			path = l.envToPath(name)
		}
		setByPath(config, path, l.value(path, value))
	}

	return config, nil
}

func (l *EnvLoader) value(path, raw string) any {
	if l.verbatim[path] {
		return raw
	}
	return parseValue(raw)
}

// envToPath turns the first word after the prefix into the section and the
// rest into a snake_case key.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok {
		return section
	}
	return section + "." + key
}

// parseValue converts s to a bool, int64, or float64 when it looks like one.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
