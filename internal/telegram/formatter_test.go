package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/kitbuilder587/prompt-refactor-bot/internal/domain"
)

func TestFormatRefactorResult(t *testing.T) {
	result := &domain.RefactorResult{
		Output: "Role: writer\nTask: <improve>",
		Model:  "gpt-4",
	}

	got := FormatRefactorResult(result)

	if !strings.Contains(got, "<pre>") {
		t.Error("result should be wrapped in <pre>")
	}
	if !strings.Contains(got, "&lt;improve&gt;") {
		t.Error("HTML in model output must be escaped")
	}
	if strings.Contains(got, "из кеша") {
		t.Error("non-cached result should not carry the cache marker")
	}

	result.Cached = true
	if got := FormatRefactorResult(result); !strings.Contains(got, "из кеша") {
		t.Error("cached result should carry the cache marker")
	}
}

func TestFormatHistory(t *testing.T) {
	records := []domain.Refactoring{
		{ID: 2, Input: "second <prompt>", Model: "gpt-4", CreatedAt: time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)},
		{ID: 1, Input: strings.Repeat("x", 300), Model: "gpt-4", CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	}

	got := FormatHistory(records)

	if !strings.Contains(got, "1. 02.06.2025 12:00") {
		t.Errorf("history should number and date records, got %q", got)
	}
	if !strings.Contains(got, "&lt;prompt&gt;") {
		t.Error("history input must be HTML-escaped")
	}
	if !strings.Contains(got, "...") {
		t.Error("long input should be truncated with ellipsis")
	}
	if !strings.Contains(got, "Всего: 2") {
		t.Error("history should report total count")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short stays", "hello", 10, "hello"},
		{"exact stays", "hello", 5, "hello"},
		{"long cut", "hello world", 5, "hello..."},
		{"utf-8 not broken", "привет", 3, "п..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestSplitMessage(t *testing.T) {
	short := "short message"
	if got := SplitMessage(short, 100); len(got) != 1 || got[0] != short {
		t.Errorf("SplitMessage(short) = %v, want single message", got)
	}

	long := strings.Repeat("word ", 100)
	parts := SplitMessage(long, 64)

	if len(parts) < 2 {
		t.Fatalf("len(parts) = %d, want several", len(parts))
	}
	for i, p := range parts {
		if len(p) > 64 {
			t.Errorf("part %d length = %d, over limit", i, len(p))
		}
	}
	if strings.Join(parts, "") != long {
		t.Error("joined parts should reproduce the original text")
	}
}

func TestSplitMessage_NoSpaces(t *testing.T) {
	text := strings.Repeat("a", 150)
	parts := SplitMessage(text, 64)

	for i, p := range parts {
		if len(p) > 64 {
			t.Errorf("part %d length = %d, over limit", i, len(p))
		}
	}
	if strings.Join(parts, "") != text {
		t.Error("joined parts should reproduce the original text")
	}
}
