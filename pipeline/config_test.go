package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseOptions tests building scan options from a koanf tree
func TestParseOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"file": "app.log",
		"fields": ["timestamp", "req.peer.addr"],
		"from": "2015-04-24T20:55",
		"output": "raw",
		"quiet": true,
		"skip-malformed": true
	}`), 0644))

	ko := koanf.New(".")
	require.NoError(t, ko.Load(file.Provider(path), kjson.Parser()))

	opts, err := ParseOptions(ko)
	require.NoError(t, err)

	assert.Equal(t, "app.log", opts.Filename)
	assert.Equal(t, []any{"timestamp", "req.peer.addr"}, opts.Fields)
	assert.Equal(t, "2015-04-24T20:55", opts.From)
	assert.Nil(t, opts.Until)
	assert.Equal(t, "raw", opts.Output)
	assert.True(t, opts.Quiet)
	assert.True(t, opts.SkipMalformed)
	assert.False(t, opts.Follow)
}

// TestParseOptions_Empty tests that absent keys stay zero-valued
func TestParseOptions_Empty(t *testing.T) {
	opts, err := ParseOptions(koanf.New("."))
	require.NoError(t, err)

	assert.Empty(t, opts.Filename)
	assert.Nil(t, opts.Output)
	assert.Nil(t, opts.From)
	assert.Nil(t, opts.Fields)
}
