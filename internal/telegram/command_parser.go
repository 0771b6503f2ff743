package telegram

import (
	"strconv"
	"strings"
)

const maxHistoryLimit = 20

// ParseHistoryLimit разбирает аргумент /history N; мусор и ноль дают
// значение по умолчанию, верх ограничен maxHistoryLimit.
func ParseHistoryLimit(args string, defaultLimit int) int {
	if defaultLimit <= 0 || defaultLimit > maxHistoryLimit {
		defaultLimit = 5
	}

	n, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || n <= 0 {
		return defaultLimit
	}

	if n > maxHistoryLimit {
		return maxHistoryLimit
	}
	return n
}
