// AngelaMos | 2026
// types_test.go

package core

import (
	"testing"
)

func TestStringSliceValue(t *testing.T) {
	t.Parallel()

	var nilSlice StringSlice
	v, err := nilSlice.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}
	if string(v.([]byte)) != "[]" {
		t.Fatalf("nil slice value = %s, want []", v)
	}

	v, err = StringSlice{"a.jpg", "b.jpg"}.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}
	if string(v.([]byte)) != `["a.jpg","b.jpg"]` {
		t.Fatalf("value = %s", v)
	}
}

func TestStringSliceScan(t *testing.T) {
	t.Parallel()

	var s StringSlice
	if err := s.Scan([]byte(`["a.jpg","b.jpg"]`)); err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(s) != 2 || s[0] != "a.jpg" {
		t.Fatalf("scanned = %v", s)
	}

	if err := s.Scan(`["c.jpg"]`); err != nil {
		t.Fatalf("Scan string error: %v", err)
	}
	if len(s) != 1 || s[0] != "c.jpg" {
		t.Fatalf("scanned from string = %v", s)
	}

	if err := s.Scan(nil); err != nil {
		t.Fatalf("Scan nil error: %v", err)
	}
	if s == nil || len(s) != 0 {
		t.Fatalf("nil scan should produce empty slice, got %v", s)
	}

	if err := s.Scan(42); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}
