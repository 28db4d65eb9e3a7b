package store

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/romanzzaa/twse-alert-bot/internal/domain"
)

// WatchStore - единственное разделяемое мутабельное состояние процесса:
// userID -> instrumentID -> Watch. Командный путь и планировщик дергают его
// конкурентно, поэтому все операции под замком. Критические секции короткие,
// замок никогда не живет дольше работы с map - сетевые вызовы строго снаружи.
//
// --- Hot Path: Snapshot-then-Rebase ---
// Планировщик берет Snapshot (глубокую копию) и итерируется без замка,
// а перебазирует через Rebase. Удаление, проскочившее между снапшотом и
// перебазированием, дает Rebase=false - это штатный no-op, не ошибка.
type WatchStore struct {
	mu    sync.RWMutex
	users map[string]map[string]domain.Watch
}

func NewWatchStore() *WatchStore {
	return &WatchStore{
		users: make(map[string]map[string]domain.Watch),
	}
}

// AddOrReplace вставляет или молча перезаписывает наблюдение,
// пересчитывая пороги от basePrice. Last-writer-wins.
func (s *WatchStore) AddOrReplace(userID, instrumentID string, basePrice decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	watches, ok := s.users[userID]
	if !ok {
		watches = make(map[string]domain.Watch)
		s.users[userID] = watches
	}
	watches[instrumentID] = domain.NewWatch(instrumentID, basePrice)
}

// Remove удаляет наблюдение и сообщает, существовало ли оно.
// Отсутствие - не ошибка. Пустую карту пользователя тоже подчищаем.
func (s *WatchStore) Remove(userID, instrumentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	watches, ok := s.users[userID]
	if !ok {
		return false
	}
	if _, ok := watches[instrumentID]; !ok {
		return false
	}
	delete(watches, instrumentID)
	if len(watches) == 0 {
		delete(s.users, userID)
	}
	return true
}

// List возвращает копию списка наблюдений пользователя,
// отсортированную по коду бумаги. По копии можно ходить без замка.
func (s *WatchStore) List(userID string) []domain.WatchEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	watches := s.users[userID]
	if len(watches) == 0 {
		return nil
	}

	entries := make([]domain.WatchEntry, 0, len(watches))
	for _, w := range watches {
		entries = append(entries, domain.WatchEntry{
			InstrumentID: w.InstrumentID,
			BasePrice:    w.BasePrice,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].InstrumentID < entries[j].InstrumentID
	})
	return entries
}

// Snapshot возвращает глубокую копию всего состояния для цикла опроса.
// Watch - value type, так что копии map достаточно: конкурентные мутации
// живого состояния снапшот не трогают.
func (s *WatchStore) Snapshot() map[string]map[string]domain.Watch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(map[string]map[string]domain.Watch, len(s.users))
	for userID, watches := range s.users {
		userCopy := make(map[string]domain.Watch, len(watches))
		for instrumentID, w := range watches {
			userCopy[instrumentID] = w
		}
		snap[userID] = userCopy
	}
	return snap
}

// Rebase пересчитывает базу и пороги существующего наблюдения от newBasePrice.
// false - пользователь или бумага уже удалены (гонка со снапшотом), no-op.
func (s *WatchStore) Rebase(userID, instrumentID string, newBasePrice decimal.Decimal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	watches, ok := s.users[userID]
	if !ok {
		return false
	}
	if _, ok := watches[instrumentID]; !ok {
		return false
	}
	watches[instrumentID] = domain.NewWatch(instrumentID, newBasePrice)
	return true
}
