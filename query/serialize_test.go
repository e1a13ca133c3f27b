package query

import (
	"testing"
	"time"
)

func TestSerialize_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "hello", "hello"},
		{"empty string", "", ""},
		{"int", 42, "42"},
		{"negative int", -7, "-7"},
		{"int64", int64(9000000000), "9000000000"},
		{"float", 3.14, "3.14"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"nil", nil, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Serialize(tt.in); got != tt.want {
				t.Errorf("Serialize(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSerialize_Time(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2024, 5, 17, 15, 30, 45, 123_000_000, loc)

	got := Serialize(ts)
	want := "2024-05-17T12:30:45.123Z"
	if got != want {
		t.Errorf("Serialize(time) = %q, want %q", got, want)
	}
}

func TestSerialize_TimePointer(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got, want := Serialize(&ts), "2024-01-02T03:04:05.000Z"; got != want {
		t.Errorf("Serialize(*time) = %q, want %q", got, want)
	}

	var nilTime *time.Time
	if got := Serialize(nilTime); got != "null" {
		t.Errorf("Serialize(nil *time.Time) = %q, want null", got)
	}
}

func TestSerialize_Map(t *testing.T) {
	got := Serialize(map[string]any{"status": "active"})
	want := `{"status":"active"}`
	if got != want {
		t.Errorf("Serialize(map) = %q, want %q", got, want)
	}
}

func TestSerialize_Struct(t *testing.T) {
	type filter struct {
		Status string `json:"status"`
		Age    int    `json:"age"`
	}

	got := Serialize(filter{Status: "active", Age: 30})
	want := `{"status":"active","age":30}`
	if got != want {
		t.Errorf("Serialize(struct) = %q, want %q", got, want)
	}
}

func TestSerialize_NilPointer(t *testing.T) {
	type filter struct{ Status string }
	var f *filter
	if got := Serialize(f); got != "null" {
		t.Errorf("Serialize(nil pointer) = %q, want null", got)
	}
}

func TestSerialize_StructPointer(t *testing.T) {
	type filter struct {
		Status string `json:"status"`
	}

	got := Serialize(&filter{Status: "done"})
	want := `{"status":"done"}`
	if got != want {
		t.Errorf("Serialize(*struct) = %q, want %q", got, want)
	}
}
