package sinks

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarungka/sift/internal/models"
)

func keyField(key string) models.Field {
	return models.Field{Key: key, Get: func(r models.Record) any { return r[key] }}
}

// TestDelimited_Escaping tests the quote-and-escape rules
func TestDelimited_Escaping(t *testing.T) {
	var buf bytes.Buffer
	sink := NewDelimited(&buf)

	rec := models.Record{"a": `hello, "world"`, "b": "plain", "c": 42}
	err := sink(rec, []models.Field{keyField("a"), keyField("b"), keyField("c")})
	require.NoError(t, err)

	assert.Equal(t, `"hello, \"world\"",plain,42`+"\n", buf.String())
}

// TestDelimited_NewlineAndNil tests newline quoting and nil rendering
func TestDelimited_NewlineAndNil(t *testing.T) {
	var buf bytes.Buffer
	sink := NewDelimited(&buf)

	rec := models.Record{"a": "two\nlines"}
	err := sink(rec, []models.Field{keyField("a"), keyField("missing")})
	require.NoError(t, err)

	assert.Equal(t, "\"two\nlines\",\n", buf.String())
}

// TestConsole tests the space-separated console listing
func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsole(&buf)

	rec := models.Record{"level": "info", "msg": "up"}
	err := sink(rec, []models.Field{keyField("level"), keyField("msg"), keyField("nope")})
	require.NoError(t, err)

	assert.Equal(t, "info up -\n", buf.String())
}

// TestRaw tests whole-record JSON passthrough
func TestRaw(t *testing.T) {
	var buf bytes.Buffer
	sink := NewRaw(&buf)

	rec := models.Record{"level": "info", "n": float64(3)}
	require.NoError(t, sink(rec, nil))

	var got models.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, rec, got)
}

// TestForName tests name resolution and its default fallback
func TestForName(t *testing.T) {
	assert.NotNil(t, ForName(Delimited))
	assert.NotNil(t, ForName(Console))
	assert.NotNil(t, ForName(Raw))
	assert.NotNil(t, ForName(""))
	assert.NotNil(t, ForName("no-such-sink"))
}
