package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	registrydomain "qr-manager-go/internal/domain/registry"
)

// Store is an in-memory PartitionStore used by tests and the memory backend.
// Partitions keep insertion order internally; Partitions() reports names
// sorted so scan order stays deterministic across runs.
type Store struct {
	mu         sync.RWMutex
	partitions map[string][][]string
}

func NewStore() *Store {
	return &Store{partitions: make(map[string][][]string)}
}

func (s *Store) Ensure(_ context.Context, name string, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.partitions[name]; ok {
		return nil
	}
	s.partitions[name] = [][]string{cloneRow(header)}
	return nil
}

func (s *Store) Append(_ context.Context, name string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.partitions[name]
	if !ok {
		return fmt.Errorf("%w: %s", registrydomain.ErrPartitionNotFound, name)
	}
	s.partitions[name] = append(rows, cloneRow(row))
	return nil
}

func (s *Store) Scan(_ context.Context, name string) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, ok := s.partitions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", registrydomain.ErrPartitionNotFound, name)
	}

	result := make([][]string, len(rows))
	for i, row := range rows {
		result[i] = cloneRow(row)
	}
	return result, nil
}

func (s *Store) UpdateCell(_ context.Context, name string, rowIndex, colIndex int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.partitions[name]
	if !ok {
		return fmt.Errorf("%w: %s", registrydomain.ErrPartitionNotFound, name)
	}
	if rowIndex < 0 || rowIndex >= len(rows) {
		return fmt.Errorf("partition %s has no row %d", name, rowIndex)
	}

	row := rows[rowIndex]
	if colIndex < 0 {
		return fmt.Errorf("invalid column %d", colIndex)
	}
	for len(row) <= colIndex {
		row = append(row, "")
	}
	row[colIndex] = value
	rows[rowIndex] = row
	return nil
}

func (s *Store) Partitions(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.partitions))
	for name := range s.partitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func cloneRow(row []string) []string {
	cloned := make([]string, len(row))
	copy(cloned, row)
	return cloned
}
