package domain

import "github.com/shopspring/decimal"

// --- Enums & Constants ---

// Direction - направление пробоя порога
type Direction string

const (
	DirectionUp   Direction = "up"   // Цена выросла на 5%+ от базы
	DirectionDown Direction = "down" // Цена упала на 5%+ от базы
)

// Пороги всегда ±5% от базовой цены. Множители храним как decimal,
// чтобы проверка пробоя шла точными сравнениями, а не пересчетом процентов.
var (
	upRatio   = decimal.RequireFromString("1.05")
	downRatio = decimal.RequireFromString("0.95")
)

// --- Entities ---

// Watch - наблюдение за одной бумагой для одного пользователя.
// UpThreshold и DownThreshold всегда производные от BasePrice на момент
// последнего (пере)базирования. По отдельности их никто не меняет.
type Watch struct {
	InstrumentID  string          // Код бумаги на бирже, например "2330"
	BasePrice     decimal.Decimal // База, от которой меряем отклонение
	UpThreshold   decimal.Decimal // BasePrice * 1.05
	DownThreshold decimal.Decimal // BasePrice * 0.95
}

// NewWatch создает наблюдение с порогами от переданной базовой цены.
func NewWatch(instrumentID string, basePrice decimal.Decimal) Watch {
	return Watch{
		InstrumentID:  instrumentID,
		BasePrice:     basePrice,
		UpThreshold:   basePrice.Mul(upRatio),
		DownThreshold: basePrice.Mul(downRatio),
	}
}

// Cross проверяет пробой порога текущей ценой.
// Равенство порогу считается пробоем, строго внутри коридора - нет.
func (w Watch) Cross(price decimal.Decimal) (Direction, bool) {
	if price.GreaterThanOrEqual(w.UpThreshold) {
		return DirectionUp, true
	}
	if price.LessThanOrEqual(w.DownThreshold) {
		return DirectionDown, true
	}
	return "", false
}

// WatchEntry - строка списка наблюдений для ответа пользователю
type WatchEntry struct {
	InstrumentID string
	BasePrice    decimal.Decimal
}
