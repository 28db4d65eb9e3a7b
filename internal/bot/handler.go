package bot

import (
	"context"
	"log/slog"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/romanzzaa/twse-alert-bot/internal/domain"
	"github.com/romanzzaa/twse-alert-bot/internal/usecase"
)

// Handler - входящий транспорт: long-polling цикл Telegram.
// Сам команды не разбирает - передает (chat id, текст) в CommandProcessor
// и отправляет его ответ обратно. Проверка подлинности на стороне Telegram.
type Handler struct {
	bot       *tgbotapi.BotAPI
	processor *usecase.CommandProcessor
	notifier  domain.Notifier
	logger    *slog.Logger
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	processor *usecase.CommandProcessor,
	notifier domain.Notifier,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		bot:       bot,
		processor: processor,
		notifier:  notifier,
		logger:    logger,
	}
}

// Start читает апдейты до отмены контекста.
// Каждое сообщение обрабатывается в своей горутине - команды разных
// пользователей друг друга не ждут, синхронизация внутри WatchStore.
func (h *Handler) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			go h.handleMessage(ctx, update.Message)
		}
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.Chat.ID, 10)

	reply := h.processor.Handle(ctx, userID, msg.Text)

	if err := h.notifier.Reply(userID, reply); err != nil {
		h.logger.Warn("Reply failed",
			slog.String("user_id", userID),
			slog.String("err", err.Error()))
	}
}
