package pipeline

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/tarungka/sift/internal/models"
)

// CompileField resolves a field spec into a uniform accessor once, at
// registration time. A spec is either a string (plain key or dotted
// path into nested objects), an accessor func, or a ready-made
// models.Field carrying its own display key. Anything else is an
// ErrInvalidFieldSpec.
func CompileField(spec any) (models.Field, error) {
	switch s := spec.(type) {
	case models.Field:
		if s.Get == nil {
			return models.Field{}, fmt.Errorf("%w: field %q has no accessor", ErrInvalidFieldSpec, s.Key)
		}
		return s, nil

	case models.GetFunc:
		return funcField(s), nil

	case func(models.Record) any:
		return funcField(s), nil

	case string:
		if strings.Contains(s, ".") {
			return models.Field{Key: s, Get: pathAccessor(s)}, nil
		}
		return models.Field{Key: s, Get: keyAccessor(s)}, nil

	default:
		return models.Field{}, fmt.Errorf("%w, got %T", ErrInvalidFieldSpec, spec)
	}
}

func funcField(fn models.GetFunc) models.Field {
	return models.Field{Key: funcKey(fn), Get: fn}
}

// funcKey derives a stable display key for a caller-supplied accessor
// from its function name.
func funcKey(fn models.GetFunc) string {
	name := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

func keyAccessor(key string) models.GetFunc {
	return func(r models.Record) any {
		return r[key]
	}
}

// pathAccessor walks a dotted path segment by segment. The walk
// short-circuits to nil the moment any prefix is nil, absent or not an
// object; a missing path is never an error.
func pathAccessor(path string) models.GetFunc {
	segments := strings.Split(path, ".")
	return func(r models.Record) any {
		var current any = r
		for _, seg := range segments {
			switch m := current.(type) {
			case models.Record:
				current = m[seg]
			case map[string]any:
				current = m[seg]
			default:
				return nil
			}
			if current == nil {
				return nil
			}
		}
		return current
	}
}
