package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceSource - источник текущих котировок.
// Любая ошибка означает "цена недоступна": сеть, битый ответ,
// сентинелы биржи ("-", "0", пустой msgArray). Вызывающий причины не различает.
type PriceSource interface {
	GetPrice(ctx context.Context, instrumentID string) (decimal.Decimal, error)
}

// Notifier - доставка сообщений пользователю.
// Push - инициативное уведомление (алерты планировщика),
// Reply - ответ на входящее сообщение (командный путь).
// Ошибки доставки не фатальны для вызывающего.
type Notifier interface {
	Push(userID string, text string) error
	Reply(replyToken string, text string) error
}
