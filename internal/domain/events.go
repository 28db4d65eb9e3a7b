package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrossingEvent - событие пробоя порога, которое триггерит алерт и перебазирование
type CrossingEvent struct {
	UserID       string
	InstrumentID string
	OldBase      decimal.Decimal // База на момент пробоя
	Price        decimal.Decimal // Цена, пробившая порог (станет новой базой)
	Direction    Direction
	Time         time.Time
}
