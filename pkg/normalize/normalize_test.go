package normalize

import (
	"reflect"
	"testing"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		def  string
		want string
	}{
		{"valid string", "hello", "def", "hello"},
		{"empty string", "", "def", "def"},
		{"nil", nil, "def", "def"},
		{"number", 42.0, "def", "def"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.in, tt.def); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		def  int
		want int
	}{
		{"json number", 7.0, 0, 7},
		{"go int", 7, 0, 7},
		{"fractional", 7.5, 0, 0},
		{"string", "7", 0, 0},
		{"nil", nil, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Int(tt.in, tt.def); got != tt.want {
				t.Errorf("Int() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestObjectNeverNil(t *testing.T) {
	for _, in := range []interface{}{nil, "x", 3.0, []interface{}{}, map[string]interface{}(nil)} {
		if got := Object(in); got == nil {
			t.Errorf("Object(%v) returned nil", in)
		}
	}
	m := map[string]interface{}{"a": 1}
	if got := Object(m); !reflect.DeepEqual(got, m) {
		t.Errorf("Object() dropped valid map")
	}
}

func TestStringSlice(t *testing.T) {
	in := []interface{}{"a", 1.0, nil, "b", map[string]interface{}{}}
	want := []string{"a", "b"}
	if got := StringSlice(in); !reflect.DeepEqual(got, want) {
		t.Errorf("StringSlice() = %v, want %v", got, want)
	}
	if got := StringSlice(nil); got == nil || len(got) != 0 {
		t.Errorf("StringSlice(nil) = %v, want empty slice", got)
	}
	// Idempotent: re-coercing the result changes nothing.
	roundTrip := make([]interface{}, 0, len(want))
	for _, s := range StringSlice(in) {
		roundTrip = append(roundTrip, s)
	}
	if got := StringSlice(roundTrip); !reflect.DeepEqual(got, want) {
		t.Errorf("StringSlice() not idempotent: %v", got)
	}
}

func TestStringMap(t *testing.T) {
	in := map[string]interface{}{"a": "x", "b": 2.0, "c": nil}
	want := map[string]string{"a": "x"}
	if got := StringMap(in); !reflect.DeepEqual(got, want) {
		t.Errorf("StringMap() = %v, want %v", got, want)
	}
	if got := StringMap("junk"); got == nil || len(got) != 0 {
		t.Errorf("StringMap(junk) = %v, want empty map", got)
	}
}

func TestSliceOf(t *testing.T) {
	type pair struct{ K string }
	conv := func(m map[string]interface{}) (pair, bool) {
		s, ok := m["k"].(string)
		return pair{K: s}, ok
	}
	in := []interface{}{
		map[string]interface{}{"k": "one"},
		map[string]interface{}{"k": 2.0}, // fails predicate
		"garbage",
		map[string]interface{}{"k": "three"},
	}
	got := SliceOf(in, conv)
	want := []pair{{K: "one"}, {K: "three"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SliceOf() = %v, want %v", got, want)
	}
	if got := SliceOf(nil, conv); got == nil || len(got) != 0 {
		t.Errorf("SliceOf(nil) = %v, want empty slice", got)
	}
}

func TestEnum(t *testing.T) {
	allowed := []string{"random", "browse", "read_through"}
	if got := Enum("browse", allowed, "read_through"); got != "browse" {
		t.Errorf("Enum() = %q", got)
	}
	if got := Enum("yolo", allowed, "read_through"); got != "read_through" {
		t.Errorf("Enum() = %q, want default", got)
	}
	if got := Enum(nil, allowed, "read_through"); got != "read_through" {
		t.Errorf("Enum(nil) = %q, want default", got)
	}
}
