package dtos

import (
	"bytes"
	"reflect"

	"github.com/goccy/go-json"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
)

// Optional is a JSON field that remembers whether it was present in the
// payload and whether it was an explicit null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: v} }

func Null[T any]() Optional[T] { return Optional[T]{Set: true, Null: true} }

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		o.Null, o.Value = true, zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// validationValue exposes the wrapped value to validator tags. Absent and
// null fields read as nil so `omitempty` skips them; present values are
// handed over as pointers so an explicit zero value is still checked.
func validationValue[T any](field reflect.Value) any {
	o, ok := field.Interface().(Optional[T])
	if !ok || !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// patchBuilder turns present Optional fields into patch assignments and
// records the first explicit null on a non-nullable column.
type patchBuilder struct {
	patch repositories.Patch
	err   error
}

func newPatchBuilder() *patchBuilder {
	return &patchBuilder{patch: repositories.NewPatch()}
}

func setField[T any](b *patchBuilder, column string, o Optional[T], nullable bool) {
	if !o.Set || b.err != nil {
		return
	}
	if o.Null {
		if !nullable {
			b.err = db.Invalid(column, "must not be null")
			return
		}
		b.patch.Set(column, nil)
		return
	}
	b.patch.Set(column, o.Value)
}

func (b *patchBuilder) build() (repositories.Patch, error) {
	return b.patch, b.err
}
