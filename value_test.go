package payload

import (
	"errors"
	"testing"
)

func TestValue(t *testing.T) {
	t.Run("type is stable after construction", func(t *testing.T) {
		reg := NewRegistry()
		v, err := NewValue(reg, int64(7))
		if err != nil {
			t.Fatal(err)
		}
		id := v.Type()
		*GetMutableAs[int64](v) = 99
		if !v.Type().Equal(id) {
			t.Error("Type changed after mutation")
		}
	})

	t.Run("get and mutable access alias the same storage", func(t *testing.T) {
		reg := NewRegistry()
		v, err := NewValue(reg, "before")
		if err != nil {
			t.Fatal(err)
		}
		*GetMutableAs[string](v) = "after"
		if got := GetAs[string](v); got != "after" {
			t.Errorf("Get = %q, want %q", got, "after")
		}
	})

	t.Run("copy is independent", func(t *testing.T) {
		reg := NewRegistry()
		v, err := NewValue(reg, int64(42))
		if err != nil {
			t.Fatal(err)
		}
		c := v.Copy()
		*GetMutableAs[int64](c) = 1000
		if got := GetAs[int64](v); got != 42 {
			t.Errorf("original changed to %d after mutating copy", got)
		}
		*GetMutableAs[int64](v) = -1
		if got := GetAs[int64](c); got != 1000 {
			t.Errorf("copy changed to %d after mutating original", got)
		}
	})

	t.Run("byte slice copy does not share backing array", func(t *testing.T) {
		reg := NewRegistry()
		v, err := NewValue(reg, []byte{1, 2, 3})
		if err != nil {
			t.Fatal(err)
		}
		c := v.Copy()
		(*GetMutableAs[[]byte](c))[0] = 9
		if got := GetAs[[]byte](v); got[0] != 1 {
			t.Errorf("original[0] = %d after mutating copy, want 1", got[0])
		}
	})

	t.Run("string rendering uses fmt", func(t *testing.T) {
		reg := NewRegistry()
		v, err := NewValue(reg, int64(42))
		if err != nil {
			t.Fatal(err)
		}
		if got := v.String(); got != "42" {
			t.Errorf("String = %q, want %q", got, "42")
		}
	})

	t.Run("unregistered type is rejected", func(t *testing.T) {
		reg := NewRegistry()
		_, err := NewValue(reg, struct{ X int }{})
		var ute *UnknownTypeError
		if !errors.As(err, &ute) {
			t.Errorf("error = %v, want UnknownTypeError", err)
		}
	})

	t.Run("save without codec reports unserializable", func(t *testing.T) {
		reg := NewRegistry()
		Register[color](reg) // no save/load options, no Saver
		v, err := NewValue(reg, color{})
		if err != nil {
			t.Fatal(err)
		}
		saveErr := v.Save(&recordingSink{})
		if !errors.Is(saveErr, ErrUnserializable) {
			t.Errorf("Save error = %v, want ErrUnserializable", saveErr)
		}
		loadErr := v.Load(&BinarySource{})
		if !errors.Is(loadErr, ErrUnserializable) {
			t.Errorf("Load error = %v, want ErrUnserializable", loadErr)
		}
	})
}
