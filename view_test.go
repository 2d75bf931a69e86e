package payload

import (
	"errors"
	"testing"
)

func TestView(t *testing.T) {
	t.Run("binds without copying", func(t *testing.T) {
		reg := NewRegistry()
		n, s := int64(42), "hi"
		v := MustView(reg, &n, &s)

		if v.Size() != 2 {
			t.Fatalf("Size = %d, want 2", v.Size())
		}
		n = 100
		if got := v.Get(0).(int64); got != 100 {
			t.Errorf("view sees %d after external write, want 100", got)
		}
	})

	t.Run("mutations through the view reach the variables", func(t *testing.T) {
		reg := NewRegistry()
		s := "before"
		v := MustView(reg, &s)

		*v.GetMutable(0).(*string) = "after"
		if s != "after" {
			t.Errorf("variable = %q after view write, want %q", s, "after")
		}
	})

	t.Run("clone aliases the same storage", func(t *testing.T) {
		reg := NewRegistry()
		n := int64(1)
		v := MustView(reg, &n)
		c := v.Clone()

		*c.GetMutable(0).(*int64) = 2
		if n != 2 {
			t.Errorf("variable = %d after clone write, want 2", n)
		}
		if v.Get(0).(int64) != 2 {
			t.Error("original view does not see clone's write")
		}
		if c.TypeToken() != v.TypeToken() {
			t.Error("clone token differs from original")
		}
	})

	t.Run("copy detaches from the variables", func(t *testing.T) {
		reg := NewRegistry()
		n := int64(42)
		v := MustView(reg, &n)

		c := v.Copy(0)
		n = 7
		if got := GetAs[int64](c); got != 42 {
			t.Errorf("copy = %d after external write, want 42", got)
		}
	})

	t.Run("rejects non-pointer arguments", func(t *testing.T) {
		reg := NewRegistry()
		if _, err := NewView(reg, int64(42)); err == nil {
			t.Error("expected error for non-pointer argument")
		}
		if _, err := NewView(reg, nil); err == nil {
			t.Error("expected error for nil argument")
		}
	})

	t.Run("rejects unregistered element types", func(t *testing.T) {
		reg := NewRegistry()
		var c color
		_, err := NewView(reg, &c)
		var ute *UnknownTypeError
		if !errors.As(err, &ute) {
			t.Errorf("error = %v, want UnknownTypeError", err)
		}
	})

	t.Run("equal type sequences share a token", func(t *testing.T) {
		reg := NewRegistry()
		n1, s1 := int64(1), "a"
		n2, s2 := int64(2), "b"

		v1 := MustView(reg, &n1, &s1)
		v2 := MustView(reg, &n2, &s2)
		if v1.TypeToken() != v2.TypeToken() {
			t.Error("views over identical type sequences have different tokens")
		}

		owned := MustTuple(reg, int64(3), "c")
		if owned.TypeToken() != v1.TypeToken() {
			t.Error("owning tuple token differs from view token for same types")
		}
	})

	t.Run("reordered type sequences are distinguishable", func(t *testing.T) {
		reg := NewRegistry()
		n, s := int64(1), "a"
		forward := MustView(reg, &n, &s)
		reversed := MustView(reg, &s, &n)
		if forward.TypeToken() == reversed.TypeToken() {
			t.Error("reversed type sequence collides with forward token")
		}
	})
}

func TestValues(t *testing.T) {
	t.Run("construction copies its inputs", func(t *testing.T) {
		reg := NewRegistry()
		n := int64(42)
		tup := MustTuple(reg, n)
		n = 7
		if got := tup.Get(0).(int64); got != 42 {
			t.Errorf("tuple sees %d after external write, want 42", got)
		}
	})

	t.Run("rejects unregistered types", func(t *testing.T) {
		reg := NewRegistry()
		_, err := NewTuple(reg, color{})
		var ute *UnknownTypeError
		if !errors.As(err, &ute) {
			t.Errorf("error = %v, want UnknownTypeError", err)
		}
	})

	t.Run("copy tuple detaches fully", func(t *testing.T) {
		reg := NewRegistry()
		n, s := int64(42), "hi"
		v := MustView(reg, &n, &s)

		detached := CopyTuple(v)
		n, s = 0, "changed"
		if got := Stringify(detached); got != "(42, hi)" {
			t.Errorf("detached = %q, want %q", got, "(42, hi)")
		}
		if detached.TypeToken() != v.TypeToken() {
			t.Error("detached token differs from source")
		}
	})

	t.Run("shared flag is advisory metadata", func(t *testing.T) {
		reg := NewRegistry()
		tup := MustTuple(reg, int64(1))
		if tup.Shared() {
			t.Error("fresh tuple reports shared")
		}
		tup.SetShared(true)
		if !tup.Shared() {
			t.Error("SetShared not reflected")
		}
	})
}
