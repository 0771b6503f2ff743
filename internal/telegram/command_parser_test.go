package telegram

import "testing"

func TestParseHistoryLimit(t *testing.T) {
	tests := []struct {
		name         string
		args         string
		defaultLimit int
		want         int
	}{
		{"empty args", "", 5, 5},
		{"valid number", "10", 5, 10},
		{"with spaces", "  7  ", 5, 7},
		{"garbage", "ten", 5, 5},
		{"zero", "0", 5, 5},
		{"negative", "-3", 5, 5},
		{"over cap", "100", 5, maxHistoryLimit},
		{"bad default", "", 0, 5},
		{"default over cap", "", 50, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseHistoryLimit(tt.args, tt.defaultLimit)
			if got != tt.want {
				t.Errorf("ParseHistoryLimit(%q, %d) = %d, want %d", tt.args, tt.defaultLimit, got, tt.want)
			}
		})
	}
}
