package telegram

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier - доставка сообщений через Telegram Bot API.
// userID и reply-токен здесь одно и то же - chat id, записанный строкой:
// Telegram позволяет писать в чат инициативно, отдельного токена ответа нет.
type Notifier struct {
	bot *tgbotapi.BotAPI
}

func NewNotifier(bot *tgbotapi.BotAPI) *Notifier {
	return &Notifier{bot: bot}
}

// --- Implementation of domain.Notifier ---

func (n *Notifier) Push(userID string, text string) error {
	return n.send(userID, text)
}

func (n *Notifier) Reply(replyToken string, text string) error {
	return n.send(replyToken, text)
}

func (n *Notifier) send(chatID string, text string) error {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("bad chat id %q: %w", chatID, err)
	}

	msg := tgbotapi.NewMessage(id, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	return nil
}
