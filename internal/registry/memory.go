package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ytget/map-downloader/internal/model"
)

// Memory is an in-process Registry
type Memory struct {
	mu      sync.RWMutex
	records map[int64]model.PendingDownload
}

// NewMemory returns an empty in-memory registry
func NewMemory() *Memory {
	return &Memory{records: make(map[int64]model.PendingDownload)}
}

func (m *Memory) Add(rec model.PendingDownload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ID] = rec
	return nil
}

func (m *Memory) Get(id int64) (model.PendingDownload, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return model.PendingDownload{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return rec, nil
}

func (m *Memory) Remove(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	delete(m.records, id)
	return nil
}

func (m *Memory) All() ([]model.PendingDownload, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := make([]model.PendingDownload, 0, len(m.records))
	for _, rec := range m.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (m *Memory) Close() error { return nil }
