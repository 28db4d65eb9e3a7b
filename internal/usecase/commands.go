package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/romanzzaa/twse-alert-bot/internal/domain"
	"github.com/romanzzaa/twse-alert-bot/internal/store"
)

// Тексты ответов бота. Держим в константах, а не размазываем по коду.
const (
	replyHelp = "Бот следит за акциями TWSE и присылает сигнал, когда цена уходит на ±5% от базовой.\n" +
		"1) Добавить бумагу - пришлите ее код, например: 2330\n" +
		"2) Удалить бумагу: del 2330 или remove 2330\n" +
		"3) Список наблюдений: list\n" +
		"4) Эта справка: help"

	replyNoWatches = "📭 Вы пока не следите ни за одной бумагой.\n" +
		"Пришлите код бумаги, например 2330, чтобы начать."

	replyListHeader = "Ваши наблюдения (сигнал на каждые ±5%):"

	replyDelUsage = "Формат команды: del 2330 или remove 2330"

	replyUnknown = "Не понял команду.\n" +
		"1) Код бумаги, например 2330 - начать наблюдение\n" +
		"2) list - список наблюдений\n" +
		"3) del 2330 или remove 2330 - прекратить наблюдение\n" +
		"4) help - полная справка"

	replyAddedTpl = "✅ Слежу за %s. Базовая цена %s.\n" +
		"При каждом изменении на ±5%% пришлю сигнал и обновлю базу."

	replyQuoteFailTpl = "⚠️ Не удалось получить котировку %s.\n" +
		"Проверьте код бумаги или повторите позже."

	replyRemovedTpl     = "✅ Больше не слежу за %s."
	replyNotWatchingTpl = "Вы не следите за %s."
)

// Слова-команды удаления. Регистр не важен, сравниваем после ToLower.
var deleteWords = map[string]bool{
	"del":    true,
	"remove": true,
}

// CommandProcessor превращает текст пользователя в операции над WatchStore
// и текст ответа. Котировку дергает только при добавлении наблюдения -
// базовая цена фиксируется в момент добавления.
type CommandProcessor struct {
	store  *store.WatchStore
	prices domain.PriceSource
	logger *slog.Logger
}

func NewCommandProcessor(store *store.WatchStore, prices domain.PriceSource, logger *slog.Logger) *CommandProcessor {
	return &CommandProcessor{
		store:  store,
		prices: prices,
		logger: logger,
	}
}

// Handle разбирает одну команду и возвращает текст ответа.
// Состояния между сообщениями нет, каждая команда самодостаточна.
func (p *CommandProcessor) Handle(ctx context.Context, userID, text string) string {
	// Полноширинный пробел (U+3000) встречается при вводе с CJK-раскладки
	normalized := strings.TrimSpace(strings.ReplaceAll(text, "　", " "))
	lower := strings.ToLower(normalized)

	switch {
	case lower == "help":
		return replyHelp

	case lower == "list":
		return p.list(userID)

	default:
		if fields := strings.Fields(lower); len(fields) > 0 && deleteWords[fields[0]] {
			if len(fields) < 2 {
				return replyDelUsage
			}
			return p.remove(userID, fields[1])
		}

		if isInstrumentID(lower) {
			return p.add(ctx, userID, lower)
		}

		return replyUnknown
	}
}

func (p *CommandProcessor) add(ctx context.Context, userID, instrumentID string) string {
	price, err := p.prices.GetPrice(ctx, instrumentID)
	if err != nil {
		p.logger.Warn("Add watch failed: quote unavailable",
			slog.String("user_id", userID),
			slog.String("instrument", instrumentID),
			slog.String("err", err.Error()))
		return fmt.Sprintf(replyQuoteFailTpl, instrumentID)
	}

	// Повторное добавление молча перезаписывает наблюдение и сбрасывает базу
	p.store.AddOrReplace(userID, instrumentID, price)

	p.logger.Info("Watch added",
		slog.String("user_id", userID),
		slog.String("instrument", instrumentID),
		slog.String("base", price.String()))

	return fmt.Sprintf(replyAddedTpl, instrumentID, price.StringFixed(2))
}

func (p *CommandProcessor) remove(userID, instrumentID string) string {
	if !p.store.Remove(userID, instrumentID) {
		return fmt.Sprintf(replyNotWatchingTpl, instrumentID)
	}

	p.logger.Info("Watch removed",
		slog.String("user_id", userID),
		slog.String("instrument", instrumentID))

	return fmt.Sprintf(replyRemovedTpl, instrumentID)
}

func (p *CommandProcessor) list(userID string) string {
	entries := p.store.List(userID)
	if len(entries) == 0 {
		return replyNoWatches
	}

	var sb strings.Builder
	sb.WriteString(replyListHeader)
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("\n  - %s (базовая цена %s)", e.InstrumentID, e.BasePrice.StringFixed(2)))
	}
	return sb.String()
}

// isInstrumentID - токен целиком из цифр считаем кодом бумаги (TWSE: "2330")
func isInstrumentID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
