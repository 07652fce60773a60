package journal

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/franklinfx2/master-trader-sub000/trade"
)

// Memory is a Store that lives in process memory. It backs tests and
// one-off runs that should leave nothing on disk. Records are copied in and
// out, optional fields included.
type Memory struct {
	mu     sync.RWMutex
	trades map[string]trade.Record
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{trades: make(map[string]trade.Record)}
}

func (m *Memory) RecordTrade(_ context.Context, t trade.Record) error {
	if err := validate(t); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.trades[t.TradeID]; ok {
		return duplicate(t.TradeID)
	}
	if !t.ExecutedAt.IsZero() {
		t.ExecutedAt = t.ExecutedAt.UTC()
	}
	m.trades[t.TradeID] = clone(t)
	return nil
}

func (m *Memory) GetTrade(_ context.Context, tradeID string) (trade.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.trades[tradeID]
	if !ok {
		return trade.Record{}, notFound(tradeID)
	}
	return clone(t), nil
}

func (m *Memory) ListTrades(_ context.Context) ([]trade.Record, error) {
	return m.sorted(func(trade.Record) bool { return true }), nil
}

func (m *Memory) ListTradesBetween(_ context.Context, start, end time.Time) ([]trade.Record, error) {
	return m.sorted(func(t trade.Record) bool {
		return !t.ExecutedAt.IsZero() && !t.ExecutedAt.Before(start) && t.ExecutedAt.Before(end)
	}), nil
}

func (m *Memory) ListRecentTrades(_ context.Context, n int) ([]trade.Record, error) {
	all := m.sorted(func(trade.Record) bool { return true })
	if n > 0 && len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

func (m *Memory) DeleteTrade(_ context.Context, tradeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.trades[tradeID]; !ok {
		return notFound(tradeID)
	}
	delete(m.trades, tradeID)
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) sorted(keep func(trade.Record) bool) []trade.Record {
	m.mu.RLock()
	var out []trade.Record
	for _, t := range m.trades {
		if keep(t) {
			out = append(out, clone(t))
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].ExecutedAt, out[j].ExecutedAt
		if !a.Equal(b) {
			return a.Before(b)
		}
		return out[i].TradeID < out[j].TradeID
	})
	return out
}

// clone copies the values behind t's optional fields.
func clone(t trade.Record) trade.Record {
	if t.RMultiple != nil {
		t.RMultiple = trade.Float(*t.RMultiple)
	}
	if t.RulesFollowed != nil {
		t.RulesFollowed = trade.Bool(*t.RulesFollowed)
	}
	if t.Confidence != nil {
		t.Confidence = trade.Int(*t.Confidence)
	}
	if t.RiskPct != nil {
		t.RiskPct = trade.Float(*t.RiskPct)
	}
	return t
}
