package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"qr-manager-go/internal/domain/registry"
)

const DefaultHistoryLimit = 5

type Config struct {
	HistoryLimit     int
	PartitionPrefix  string
	CountersCacheTTL time.Duration
}

// Service computes read-only projections over the same partitions the
// lifecycle engine writes. Every call rescans the store; no cursor state is
// kept between calls. The counters cache is disabled by default (TTL 0) so
// each request sees a fresh aggregate.
type Service struct {
	store         registry.PartitionStore
	historyLimit  int
	prefix        string
	cacheTTL      time.Duration
	countersCache countersCache
	now           func() time.Time
}

func NewService(store registry.PartitionStore, cfg Config) *Service {
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	prefix := cfg.PartitionPrefix
	if prefix == "" {
		prefix = registry.DefaultPartitionPrefix
	}
	cacheTTL := cfg.CountersCacheTTL
	if cacheTTL < 0 {
		cacheTTL = 0
	}

	return &Service{
		store:        store,
		historyLimit: limit,
		prefix:       prefix,
		cacheTTL:     cacheTTL,
		now:          time.Now,
	}
}

// History returns up to limit CODE rows for a house, most-recent first.
// limit <= 0 falls back to the configured default.
func (s *Service) History(ctx context.Context, houseID, condominio string, limit int) ([]HistoryEntry, error) {
	normalized, err := registry.NormalizeHouseID(houseID)
	if err != nil {
		return nil, err
	}
	partition, err := registry.PartitionName(s.prefix, condominio)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.historyLimit
	}

	rows, err := s.store.Scan(ctx, partition)
	if err != nil {
		// A condominium nobody has registered in yet simply has no history.
		if errors.Is(err, registry.ErrPartitionNotFound) {
			return []HistoryEntry{}, nil
		}
		return nil, fmt.Errorf("scan %s: %w", partition, err)
	}

	entries := make([]HistoryEntry, 0, limit)
	for i := len(rows) - 1; i >= 1; i-- {
		record, ok := registry.RecordFromRow(rows[i])
		if !ok {
			continue
		}
		if record.HouseID != normalized || record.Kind != registry.KindCode {
			continue
		}
		entries = append(entries, historyEntryFromRecord(record))
		if len(entries) >= limit {
			break
		}
	}

	return entries, nil
}

// Counters walks every partition matching the naming prefix and classifies
// each CODE row by status. Cost is O(total rows) per call.
func (s *Service) Counters(ctx context.Context) (Counters, error) {
	if s.cacheTTL > 0 {
		if cached, ok := s.countersCache.Get(s.now()); ok {
			return cached, nil
		}
	}

	partitions, err := s.store.Partitions(ctx)
	if err != nil {
		return Counters{}, fmt.Errorf("list partitions: %w", err)
	}

	var counters Counters
	for _, name := range partitions {
		if !strings.HasPrefix(name, s.prefix) {
			continue
		}

		rows, err := s.store.Scan(ctx, name)
		if err != nil {
			return Counters{}, fmt.Errorf("scan %s: %w", name, err)
		}

		for i := 1; i < len(rows); i++ {
			record, ok := registry.RecordFromRow(rows[i])
			if !ok || record.Kind != registry.KindCode {
				continue
			}
			counters.Generated++
			switch record.Status {
			case registry.StatusValidated:
				counters.Validated++
			case registry.StatusExpired:
				counters.Denied++
			}
		}
	}

	if s.cacheTTL > 0 {
		s.countersCache.Set(counters, s.now().Add(s.cacheTTL))
	}
	return counters, nil
}

type countersCache struct {
	mu        sync.RWMutex
	counters  Counters
	expiresAt time.Time
	set       bool
}

func (c *countersCache) Get(now time.Time) (Counters, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.set || !c.expiresAt.After(now) {
		return Counters{}, false
	}
	return c.counters, true
}

func (c *countersCache) Set(counters Counters, expiresAt time.Time) {
	c.mu.Lock()
	c.counters = counters
	c.expiresAt = expiresAt
	c.set = true
	c.mu.Unlock()
}
