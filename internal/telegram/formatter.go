package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/kitbuilder587/prompt-refactor-bot/internal/domain"
)

const historyPreviewLength = 120

func FormatRefactorResult(result *domain.RefactorResult) string {
	var sb strings.Builder
	sb.WriteString("<b>Улучшенный промпт:</b>\n\n")
	sb.WriteString("<pre>")
	sb.WriteString(html.EscapeString(result.Output))
	sb.WriteString("</pre>")

	if result.Cached {
		sb.WriteString("\n<i>из кеша</i>")
	}

	return sb.String()
}

func FormatHistory(records []domain.Refactoring) string {
	var sb strings.Builder
	sb.WriteString("<b>Последние улучшения:</b>\n\n")

	for i, r := range records {
		sb.WriteString(fmt.Sprintf("%d. %s [%s]\n<i>%s</i>\n\n",
			i+1,
			r.CreatedAt.Format("02.01.2006 15:04"),
			html.EscapeString(r.Model),
			html.EscapeString(truncate(r.Input, historyPreviewLength)),
		))
	}

	sb.WriteString(fmt.Sprintf("Всего: %d", len(records)))
	return sb.String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	// не режем посреди utf-8 последовательности
	cut := maxLen
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut] + "..."
}

func SplitMessage(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var messages []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			messages = append(messages, text)
			break
		}

		splitPoint := findSplitPoint(text, maxLen)
		messages = append(messages, text[:splitPoint])
		text = text[splitPoint:]
	}

	return messages
}

// findSplitPoint ищет пробел или перевод строки ближе к maxLen, чтобы не
// рвать слова; если подходящего места нет, режет по maxLen.
func findSplitPoint(text string, maxLen int) int {
	for i := maxLen - 1; i > maxLen/2; i-- {
		if text[i] == '\n' || text[i] == ' ' {
			return i + 1
		}
	}
	return maxLen
}
