package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romanzzaa/twse-alert-bot/internal/store"
)

// fakePriceSource отдает цены из карты; незнакомый код = котировка недоступна
type fakePriceSource struct {
	prices map[string]decimal.Decimal
}

func (f *fakePriceSource) GetPrice(_ context.Context, instrumentID string) (decimal.Decimal, error) {
	price, ok := f.prices[instrumentID]
	if !ok {
		return decimal.Zero, errors.New("quote unavailable")
	}
	return price, nil
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestProcessor(prices map[string]decimal.Decimal) (*CommandProcessor, *store.WatchStore) {
	st := store.NewWatchStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCommandProcessor(st, &fakePriceSource{prices: prices}, logger), st
}

func TestHelp(t *testing.T) {
	p, _ := newTestProcessor(nil)

	assert.Equal(t, replyHelp, p.Handle(context.Background(), "user-1", "help"))
	// Регистр и пробелы по краям не важны
	assert.Equal(t, replyHelp, p.Handle(context.Background(), "user-1", "  HELP  "))
}

func TestAddWatch(t *testing.T) {
	p, st := newTestProcessor(map[string]decimal.Decimal{"2330": d("150.00")})

	reply := p.Handle(context.Background(), "user-1", "2330")
	assert.Equal(t, fmt.Sprintf(replyAddedTpl, "2330", "150.00"), reply)

	w, ok := st.Snapshot()["user-1"]["2330"]
	require.True(t, ok)
	assert.True(t, w.BasePrice.Equal(d("150.00")))
	assert.True(t, w.UpThreshold.Equal(d("157.50")))
	assert.True(t, w.DownThreshold.Equal(d("142.50")))
}

func TestAddWatchQuoteUnavailable(t *testing.T) {
	p, st := newTestProcessor(nil)

	reply := p.Handle(context.Background(), "user-1", "9999")
	assert.Equal(t, fmt.Sprintf(replyQuoteFailTpl, "9999"), reply)

	// Состояние не изменилось
	assert.Empty(t, st.Snapshot())
}

func TestList(t *testing.T) {
	p, _ := newTestProcessor(map[string]decimal.Decimal{"2330": d("150.00")})

	// Пустой список - дословно сообщение "наблюдений нет"
	assert.Equal(t, replyNoWatches, p.Handle(context.Background(), "user-1", "list"))

	p.Handle(context.Background(), "user-1", "2330")

	reply := p.Handle(context.Background(), "user-1", "LIST")
	assert.Equal(t, replyListHeader+"\n  - 2330 (базовая цена 150.00)", reply)

	// Список другого пользователя по-прежнему пуст
	assert.Equal(t, replyNoWatches, p.Handle(context.Background(), "user-2", "list"))
}

func TestRemoveWatch(t *testing.T) {
	p, _ := newTestProcessor(map[string]decimal.Decimal{"2330": d("150.00")})
	p.Handle(context.Background(), "user-1", "2330")

	assert.Equal(t, fmt.Sprintf(replyRemovedTpl, "2330"), p.Handle(context.Background(), "user-1", "del 2330"))
	// Повторное удаление - "вы не следите"
	assert.Equal(t, fmt.Sprintf(replyNotWatchingTpl, "2330"), p.Handle(context.Background(), "user-1", "del 2330"))
}

func TestRemoveWatchVariants(t *testing.T) {
	p, _ := newTestProcessor(map[string]decimal.Decimal{"2330": d("150.00")})

	p.Handle(context.Background(), "user-1", "2330")
	assert.Equal(t, fmt.Sprintf(replyRemovedTpl, "2330"), p.Handle(context.Background(), "user-1", "remove 2330"))

	// Полноширинный пробел из CJK-раскладки и верхний регистр
	p.Handle(context.Background(), "user-1", "2330")
	assert.Equal(t, fmt.Sprintf(replyRemovedTpl, "2330"), p.Handle(context.Background(), "user-1", "DEL　2330"))
}

func TestRemoveWithoutArgument(t *testing.T) {
	p, _ := newTestProcessor(nil)

	assert.Equal(t, replyDelUsage, p.Handle(context.Background(), "user-1", "del"))
	assert.Equal(t, replyDelUsage, p.Handle(context.Background(), "user-1", "remove   "))
}

func TestUnknownCommand(t *testing.T) {
	p, _ := newTestProcessor(nil)

	assert.Equal(t, replyUnknown, p.Handle(context.Background(), "user-1", "что почем"))
	// Смесь цифр и букв - не код бумаги
	assert.Equal(t, replyUnknown, p.Handle(context.Background(), "user-1", "2330x"))
	assert.Equal(t, replyUnknown, p.Handle(context.Background(), "user-1", ""))
}

func TestReaddResetsBase(t *testing.T) {
	prices := map[string]decimal.Decimal{"2330": d("150.00")}
	p, st := newTestProcessor(prices)

	p.Handle(context.Background(), "user-1", "2330")
	prices["2330"] = d("160.00")
	p.Handle(context.Background(), "user-1", "2330")

	// Повторное добавление молча перезаписало базу
	w := st.Snapshot()["user-1"]["2330"]
	assert.True(t, w.BasePrice.Equal(d("160.00")))
}
