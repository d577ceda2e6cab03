package types

import (
	"encoding/json"
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain date", "2025-01-15", "2025-01-15", false},
		{"rfc3339 truncated", "2025-01-15T10:30:00Z", "2025-01-15", false},
		{"whitespace trimmed", " 2025-01-15 ", "2025-01-15", false},
		{"garbage", "not-a-date", "", true},
		{"wrong order", "15-01-2025", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) succeeded, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", tt.in, err)
			}
			if d.String() != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.in, d, tt.want)
			}
		})
	}
}

func TestDateComparison(t *testing.T) {
	early := MustParseDate("2025-01-01")
	late := MustParseDate("2025-02-01")

	if !early.Before(late) || late.Before(early) {
		t.Error("Before comparison broken")
	}
	if !late.After(early) {
		t.Error("After comparison broken")
	}
	if !early.Equal(MustParseDate("2025-01-01")) {
		t.Error("Equal comparison broken")
	}
	if early.Compare(late) != -1 || late.Compare(early) != 1 || early.Compare(early) != 0 {
		t.Error("Compare ordering broken")
	}
}

// Dates like "2025-09-30" vs "2025-10-01" order correctly even though
// a naive string comparison of other formats would not.
func TestDateComparison_MonthBoundary(t *testing.T) {
	sep := MustParseDate("2025-09-30")
	oct := MustParseDate("2025-10-01")
	if !sep.Before(oct) {
		t.Error("month boundary ordering broken")
	}
}

func TestDateJSON(t *testing.T) {
	d := MustParseDate("2025-01-15")

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2025-01-15"` {
		t.Errorf("marshal = %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %s, want %s", back, d)
	}

	var zero Date
	data, _ = json.Marshal(zero)
	if string(data) != `""` {
		t.Errorf("zero date marshal = %s, want empty string", data)
	}

	var fromEmpty Date
	if err := json.Unmarshal([]byte(`""`), &fromEmpty); err != nil {
		t.Fatal(err)
	}
	if !fromEmpty.IsZero() {
		t.Error("empty string must decode to the zero date")
	}

	var fromTimestamp Date
	if err := json.Unmarshal([]byte(`"2025-01-15T08:00:00Z"`), &fromTimestamp); err != nil {
		t.Fatal(err)
	}
	if fromTimestamp.String() != "2025-01-15" {
		t.Errorf("timestamp decode = %s", fromTimestamp)
	}
}
