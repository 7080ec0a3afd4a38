package loader

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func TestForPath(t *testing.T) {
	memfs := NewMemFS()

	tests := []struct {
		path string
		want any
	}{
		{"/a.toml", &TOMLLoader{}},
		{"/a.TOML", &TOMLLoader{}},
		{"/a.yaml", &YAMLLoader{}},
		{"/a.yml", &YAMLLoader{}},
	}
	for _, tt := range tests {
		l, err := ForPath(memfs, tt.path)
		require.NoError(t, err, tt.path)
		assert.IsType(t, tt.want, l, tt.path)
	}

	_, err := ForPath(memfs, "/a.json")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
page_size = 512
log_level = "debug"

[paragraph]
font_size = 14
line_height = 1.5
color = "black"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	require.NoError(t, err)

	assert.Equal(t, int64(512), config["page_size"])
	assert.Equal(t, "debug", config["log_level"])

	paragraph, ok := config["paragraph"].(map[string]any)
	require.True(t, ok, "expected paragraph to be a map")
	assert.Equal(t, int64(14), paragraph["font_size"])
	assert.Equal(t, 1.5, paragraph["line_height"])
	assert.Equal(t, "black", paragraph["color"])
}

func TestTOMLLoader_LoadNonExistent(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml").Load()
	require.NoError(t, err)
	assert.Nil(t, config)
}

func TestTOMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/invalid.toml", "[paragraph\nfont_size = 4\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/invalid.toml").Load()
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "/invalid.toml", perr.Path)
	assert.Positive(t, perr.Line)
	assert.Contains(t, perr.Error(), "/invalid.toml")
}

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
page_size: 256
span:
  font_size: 11
  italic: true
  color: red
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/config.yaml").Load()
	require.NoError(t, err)

	assert.Equal(t, 256, config["page_size"])
	span, ok := config["span"].(map[string]any)
	require.True(t, ok, "expected span to be a map")
	assert.Equal(t, 11, span["font_size"])
	assert.Equal(t, true, span["italic"])
	assert.Equal(t, "red", span["color"])
}

func TestYAMLLoader_LoadNonExistent(t *testing.T) {
	config, err := NewYAMLLoaderWithFS(NewMemFS(), "/missing.yml").Load()
	require.NoError(t, err)
	assert.Nil(t, config)
}

func TestYAMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/invalid.yaml", "page_size: [1, 2\n")

	_, err := NewYAMLLoaderWithFS(memfs, "/invalid.yaml").Load()
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "/invalid.yaml", perr.Path)
}

func envLoader(vars ...string) *EnvLoader {
	l := NewEnvLoader(DefaultEnvPrefix)
	l.environ = func() []string { return vars }
	return l
}

func TestEnvLoader_Load(t *testing.T) {
	l := envLoader(
		"DOCMODEL_PAGE_SIZE=2048",
		"DOCMODEL_LOG_LEVEL=debug",
		"DOCMODEL_PARAGRAPH_FONT_SIZE=16",
		"DOCMODEL_SPAN_ITALIC=yes",
		"HOME=/root",
		"BROKEN",
	)
	config, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, int64(2048), config["page_size"])
	assert.Equal(t, "debug", config["log_level"])

	assert.Equal(t, map[string]any{"font_size": int64(16)}, config["paragraph"])
	assert.Equal(t, map[string]any{"italic": true}, config["span"])

	_, ok := config["home"]
	assert.False(t, ok)
}

func TestEnvLoader_VerbatimPaths(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix, "span.color", "log_level")
	l.environ = func() []string {
		return []string{
			"DOCMODEL_SPAN_COLOR=000000",
			"DOCMODEL_PARAGRAPH_COLOR=000000",
			"DOCMODEL_LOG_LEVEL=on",
		}
	}

	config, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"color": "000000"}, config["span"])
	assert.Equal(t, map[string]any{"color": int64(0)}, config["paragraph"])
	assert.Equal(t, "on", config["log_level"])
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)

	tests := []struct {
		env  string
		want string
	}{
		{"DOCMODEL_PARAGRAPH_FONT_SIZE", "paragraph.font_size"},
		{"DOCMODEL_SPAN_COLOR", "span.color"},
		{"DOCMODEL_SIMPLE", "simple"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.envToPath(tt.env), tt.env)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{"false", false},
		{"no", false},
		{"off", false},
		{"1", int64(1)},
		{"0", int64(0)},
		{"42", int64(42)},
		{"-10", int64(-10)},
		{"3.14", 3.14},
		{"-2.5", -2.5},
		{"1.2.3", "1.2.3"},
		{"hello", "hello"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseValue(tt.input), tt.input)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"page_size": 1024,
		"paragraph": map[string]any{"font_size": 12, "color": "black"},
	}
	src := map[string]any{
		"log_level": "debug",
		"paragraph": map[string]any{"color": "blue"},
	}

	got := DeepMerge(dst, src)
	assert.Equal(t, map[string]any{
		"page_size": 1024,
		"log_level": "debug",
		"paragraph": map[string]any{"font_size": 12, "color": "blue"},
	}, got)

	assert.Equal(t, map[string]any{"a": 1}, DeepMerge(nil, map[string]any{"a": 1}))
	assert.Equal(t, map[string]any{"a": 1}, DeepMerge(map[string]any{"a": 1}, nil))
}

func TestClone(t *testing.T) {
	src := map[string]any{
		"paragraph": map[string]any{"color": "black"},
		"list":      []any{map[string]any{"x": 1}},
	}
	dst := Clone(src)
	assert.Equal(t, src, dst)

	dst["paragraph"].(map[string]any)["color"] = "red"
	dst["list"].([]any)[0].(map[string]any)["x"] = 2
	assert.Equal(t, "black", src["paragraph"].(map[string]any)["color"])
	assert.Equal(t, 1, src["list"].([]any)[0].(map[string]any)["x"])

	assert.Nil(t, Clone(nil))
}
