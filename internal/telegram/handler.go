package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kitbuilder587/prompt-refactor-bot/internal/domain"
	"github.com/kitbuilder587/prompt-refactor-bot/internal/llm"
)

type Handler struct {
	bot *Bot
}

func NewHandler(bot *Bot) *Handler {
	return &Handler{bot: bot}
}

func (h *Handler) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	h.bot.logger.Info("received message",
		zap.Int64("user_id", msg.From.ID),
		zap.String("username", msg.From.UserName),
		zap.Bool("is_command", msg.IsCommand()),
	)

	if msg.IsCommand() {
		h.handleCommand(ctx, msg)
		return
	}

	// любой обычный текст - это промпт на улучшение
	h.handleRefactor(ctx, msg, msg.Text)
}

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		h.handleStart(ctx, msg)
	case "help":
		h.handleHelp(ctx, msg)
	case "refactor":
		h.handleRefactor(ctx, msg, msg.CommandArguments())
	case "history":
		h.handleHistory(ctx, msg)
	default:
		h.bot.Send(msg.Chat.ID, "Неизвестная команда. Используйте /help для справки.")
	}
}

func (h *Handler) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	_, err := h.bot.userService.GetOrCreate(ctx, msg.From.ID, msg.From.UserName)
	if err != nil {
		h.bot.logger.Error("failed to create user", zap.Error(err))
		h.bot.Send(msg.Chat.ID, "Произошла ошибка. Попробуйте позже.")
		return
	}

	h.bot.Send(msg.Chat.ID, "Добро пожаловать! Пришлите текст промпта, и я верну его улучшенную версию.\n\nИспользуйте /help для просмотра доступных команд.")
}

func (h *Handler) handleHelp(ctx context.Context, msg *tgbotapi.Message) {
	helpText := `<b>Доступные команды:</b>

/start - Регистрация
/help - Показать эту справку
/refactor текст - Улучшить промпт
/history - Последние улучшения

Можно просто прислать текст промпта без команды.

Бот не отвечает на промпт, а переписывает его: чётче формулировка, при необходимости секции Role / Context / Task / Constraints / Output Format, исходное намерение сохраняется.`

	h.bot.Send(msg.Chat.ID, helpText)
}

func (h *Handler) handleRefactor(ctx context.Context, msg *tgbotapi.Message, text string) {
	if !h.bot.rateLimiter.Allow(msg.From.ID) {
		resetTime := h.bot.rateLimiter.ResetTime(msg.From.ID)
		h.bot.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", msg.From.ID),
			zap.Time("reset_at", resetTime),
		)
		h.bot.RecordRateLimitHit(msg.From.ID)
		h.bot.Send(msg.Chat.ID, "Слишком много запросов. Пожалуйста, подождите минуту.")
		return
	}

	user, err := h.bot.userService.GetOrCreate(ctx, msg.From.ID, msg.From.UserName)
	if err != nil {
		h.bot.Send(msg.Chat.ID, "Произошла ошибка. Попробуйте позже.")
		return
	}

	h.bot.SendTyping(msg.Chat.ID)

	result, err := h.bot.refactorService.Refactor(ctx, &domain.RefactorRequest{
		UserID:  user.ID,
		Text:    text,
		Surface: "telegram",
	})
	if err != nil {
		h.bot.logger.Error("refactoring failed",
			zap.Error(err),
			zap.Int64("user_id", user.ID),
		)
		h.bot.Send(msg.Chat.ID, mapErrorToMessage(err))
		return
	}

	for _, m := range SplitMessage(FormatRefactorResult(result), 4096) { // лимит телеграма
		if err := h.bot.Send(msg.Chat.ID, m); err != nil {
			h.bot.logger.Error("failed to send message", zap.Error(err))
		}
	}
}

func (h *Handler) handleHistory(ctx context.Context, msg *tgbotapi.Message) {
	user, err := h.bot.userService.GetOrCreate(ctx, msg.From.ID, msg.From.UserName)
	if err != nil {
		h.bot.Send(msg.Chat.ID, "Произошла ошибка. Попробуйте позже.")
		return
	}

	limit := ParseHistoryLimit(msg.CommandArguments(), h.bot.historyLimit)

	records, err := h.bot.refactorService.History(ctx, user.ID, limit)
	if err != nil {
		h.bot.logger.Error("failed to load history", zap.Error(err))
		h.bot.Send(msg.Chat.ID, "Произошла ошибка. Попробуйте позже.")
		return
	}

	if len(records) == 0 {
		h.bot.Send(msg.Chat.ID, "История пуста. Пришлите промпт, чтобы начать.")
		return
	}

	for _, m := range SplitMessage(FormatHistory(records), 4096) {
		if err := h.bot.Send(msg.Chat.ID, m); err != nil {
			h.bot.logger.Error("failed to send message", zap.Error(err))
		}
	}
}

func mapErrorToMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyPrompt):
		return "Пустой промпт. Пришлите текст, который нужно улучшить."
	case errors.Is(err, domain.ErrPromptTooLong):
		return "Промпт слишком длинный. Максимум 4000 символов."
	case errors.Is(err, llm.ErrNoAPIKey):
		return "API ключ не настроен или отклонён. Укажите OPENAI_API_KEY в настройках."
	case errors.Is(err, llm.ErrRateLimit):
		return "Сервис модели перегружен. Попробуйте ещё раз через минуту."
	case errors.Is(err, llm.ErrInvalidResponse):
		return "Модель вернула пустой ответ. Попробуйте ещё раз."
	case errors.Is(err, llm.ErrNetwork):
		return "Не удалось связаться с сервисом модели. Проверьте соединение и попробуйте позже."
	case errors.Is(err, llm.ErrAPI):
		return "Сервис модели вернул ошибку. Попробуйте позже."
	default:
		return "Произошла ошибка. Попробуйте позже."
	}
}
