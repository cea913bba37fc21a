package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarungka/sift/internal/models"
)

// TestCompileField_PlainKey tests direct key lookup
func TestCompileField_PlainKey(t *testing.T) {
	field, err := CompileField("level")
	require.NoError(t, err)

	assert.Equal(t, "level", field.Key)
	assert.Equal(t, "warn", field.Get(models.Record{"level": "warn"}))
	assert.Nil(t, field.Get(models.Record{}))
}

// TestCompileField_DottedPath tests nested path walking
func TestCompileField_DottedPath(t *testing.T) {
	field, err := CompileField("req.peer.addr")
	require.NoError(t, err)
	assert.Equal(t, "req.peer.addr", field.Key)

	rec := models.Record{
		"req": map[string]any{
			"peer": map[string]any{"addr": "10.0.0.1"},
		},
	}
	assert.Equal(t, "10.0.0.1", field.Get(rec))
}

// TestCompileField_MissingPrefix tests that any missing or nil prefix
// short-circuits to nil instead of erroring
func TestCompileField_MissingPrefix(t *testing.T) {
	field, err := CompileField("req.peer.addr")
	require.NoError(t, err)

	for name, rec := range map[string]models.Record{
		"empty record":  {},
		"nil prefix":    {"req": nil},
		"scalar prefix": {"req": "not an object"},
		"short path":    {"req": map[string]any{"peer": map[string]any{}}},
	} {
		assert.Nil(t, field.Get(rec), name)
	}
}

// TestCompileField_Func tests caller-supplied accessors
func TestCompileField_Func(t *testing.T) {
	field, err := CompileField(models.GetFunc(func(r models.Record) any {
		return r.Line()
	}))
	require.NoError(t, err)

	assert.NotEmpty(t, field.Key)
	assert.Equal(t, 9, field.Get(models.Record{models.LineKey: 9}))

	// bare func type works too
	field, err = CompileField(func(r models.Record) any { return "x" })
	require.NoError(t, err)
	assert.Equal(t, "x", field.Get(nil))
}

// TestCompileField_NamedField tests a caller field with its own key
func TestCompileField_NamedField(t *testing.T) {
	field, err := CompileField(models.Field{Key: "line", Get: func(r models.Record) any { return r.Line() }})
	require.NoError(t, err)
	assert.Equal(t, "line", field.Key)

	_, err = CompileField(models.Field{Key: "broken"})
	assert.ErrorIs(t, err, ErrInvalidFieldSpec)
}

// TestCompileField_InvalidSpec tests rejection at registration time
func TestCompileField_InvalidSpec(t *testing.T) {
	for _, spec := range []any{42, 3.14, []string{"a"}, models.Record{}} {
		_, err := CompileField(spec)
		assert.ErrorIs(t, err, ErrInvalidFieldSpec, "%T", spec)
	}
}
