package numerator

import "testing"

func TestNext(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		count  int
		want   string
	}{
		{"first receipt", "REC", 0, "REC-0001"},
		{"first issue", "ISS", 0, "ISS-0001"},
		{"mid sequence", "REC", 41, "REC-0042"},
		{"last padded", "REC", 9998, "REC-9999"},
		{"grows past padding", "REC", 9999, "REC-10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultConfig(tt.prefix).Next(tt.count)
			if got != tt.want {
				t.Errorf("Next(%d) = %s, want %s", tt.count, got, tt.want)
			}
		})
	}
}

func TestNext_Idempotent(t *testing.T) {
	cfg := DefaultConfig("ISS")
	if cfg.Next(7) != cfg.Next(7) {
		t.Error("same count must yield the same suggestion")
	}
}

func TestFormat_CustomWidth(t *testing.T) {
	cfg := Config{Prefix: "DOC", Width: 6}
	if got := cfg.Format(12); got != "DOC-000012" {
		t.Errorf("Format(12) = %s, want DOC-000012", got)
	}
}
