package domain

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
)

var (
	ErrEmptyPrompt   = errors.New("empty prompt")
	ErrPromptTooLong = errors.New("prompt too long")
)
