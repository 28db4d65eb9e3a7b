package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/romanzzaa/twse-alert-bot/internal/domain"
	"github.com/romanzzaa/twse-alert-bot/internal/store"
)

// Тексты алертов
const (
	alertUpTpl = "📈 %s: цена %s, рост на 5%%+ от базовой %s.\n" +
		"Базовая цена обновлена."
	alertDownTpl = "📉 %s: цена %s, падение на 5%%+ от базовой %s.\n" +
		"Базовая цена обновлена."
)

// AlertScheduler - фоновый цикл проверки порогов.
// Каждый цикл: снапшот стора -> котировка по каждой бумаге -> при пробое
// уведомление и безусловное перебазирование. Замок стора на время сетевых
// вызовов не держится - работаем по копии, перебазируем точечно через Rebase.
type AlertScheduler struct {
	store    *store.WatchStore
	prices   domain.PriceSource
	notifier domain.Notifier
	interval time.Duration
	logger   *slog.Logger
}

func NewAlertScheduler(
	st *store.WatchStore,
	prices domain.PriceSource,
	notifier domain.Notifier,
	interval time.Duration,
	logger *slog.Logger,
) *AlertScheduler {
	return &AlertScheduler{
		store:    st,
		prices:   prices,
		notifier: notifier,
		interval: interval,
		logger:   logger,
	}
}

// Run крутит цикл до отмены контекста. Первый проход - сразу при старте,
// дальше по тикеру. Ошибки отдельных бумаг цикл не роняют.
func (s *AlertScheduler) Run(ctx context.Context) {
	s.logger.Info("🚀 Alert scheduler started", slog.Duration("interval", s.interval))

	s.runCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Alert scheduler stopped")
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *AlertScheduler) runCycle(ctx context.Context) {
	snap := s.store.Snapshot()

	for userID, watches := range snap {
		for _, w := range watches {
			if ctx.Err() != nil {
				return
			}
			s.checkWatch(ctx, userID, w)
		}
	}
}

// checkWatch обрабатывает одну тройку (пользователь, бумага, наблюдение).
// Все сбои гасятся здесь же: недоступная котировка - пропуск до следующего
// цикла, ошибка доставки - лог, но перебазирование выполняется всегда,
// чтобы не слать повторный алерт по тому же пробою.
func (s *AlertScheduler) checkWatch(ctx context.Context, userID string, w domain.Watch) {
	price, err := s.prices.GetPrice(ctx, w.InstrumentID)
	if err != nil {
		s.logger.Warn("Quote unavailable, skipping until next cycle",
			slog.String("instrument", w.InstrumentID),
			slog.String("err", err.Error()))
		return
	}

	direction, crossed := w.Cross(price)
	if !crossed {
		return
	}

	event := domain.CrossingEvent{
		UserID:       userID,
		InstrumentID: w.InstrumentID,
		OldBase:      w.BasePrice,
		Price:        price,
		Direction:    direction,
		Time:         time.Now(),
	}

	s.logger.Info("🔔 Threshold crossed",
		slog.String("user_id", userID),
		slog.String("instrument", w.InstrumentID),
		slog.String("direction", string(direction)),
		slog.String("base", w.BasePrice.String()),
		slog.String("price", price.String()))

	if err := s.notifier.Push(userID, alertText(event)); err != nil {
		s.logger.Warn("Push failed",
			slog.String("user_id", userID),
			slog.String("instrument", w.InstrumentID),
			slog.String("err", err.Error()))
	}

	if !s.store.Rebase(userID, w.InstrumentID, price) {
		// Наблюдение удалили между снапшотом и перебазированием - штатная гонка
		s.logger.Debug("Watch gone before rebase",
			slog.String("user_id", userID),
			slog.String("instrument", w.InstrumentID))
	}
}

func alertText(e domain.CrossingEvent) string {
	tpl := alertDownTpl
	if e.Direction == domain.DirectionUp {
		tpl = alertUpTpl
	}
	return fmt.Sprintf(tpl, e.InstrumentID, e.Price.StringFixed(2), e.OldBase.StringFixed(2))
}
