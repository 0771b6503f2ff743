package domain

import (
	"strings"
	"time"
)

const MaxPromptLength = 4000

// RefactorRequest - один запрос на улучшение промпта.
type RefactorRequest struct {
	UserID  int64
	Text    string
	Surface string // "telegram" | "http"
}

// Validate rejects empty and oversized prompts. The text itself is never
// rewritten here: what the user sent is what goes to the model.
func (r *RefactorRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyPrompt
	}

	if len(r.Text) > MaxPromptLength {
		return ErrPromptTooLong
	}

	return nil
}

type RefactorResult struct {
	Output string
	Model  string
	Cached bool
}

// Refactoring - запись истории: что прислали, что вернула модель.
type Refactoring struct {
	ID        int64
	UserID    int64
	Input     string
	Output    string
	Model     string
	CreatedAt time.Time
}
