package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/moviemonday/internal/domain/model"
	"github.com/okian/moviemonday/pkg/metrics"
)

// Snapshot is an immutable view of the store. Records keeps first-insert
// order; an upsert replaces a record in place.
type Snapshot struct {
	Records []model.WeeklyRecord
	index   map[model.ID]int
}

// MemoryStore is an in-memory Store. Writers serialize on a mutex and
// publish a fresh Snapshot; readers only load the snapshot pointer.
type MemoryStore struct {
	mu       sync.Mutex
	newID    func() model.ID
	snapshot atomic.Pointer[Snapshot]
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{newID: newUUID}
	for _, opt := range opts {
		opt(s)
	}
	s.snapshot.Store(&Snapshot{Records: []model.WeeklyRecord{}, index: map[model.ID]int{}})
	metrics.UpdateRecordsStored(0)
	return s
}

// Put implements Store.Put.
func (s *MemoryStore) Put(ctx context.Context, records ...model.WeeklyRecord) ([]model.ID, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if len(records) == 0 {
		return []model.ID{}, nil
	}

	batch := make([]model.WeeklyRecord, len(records))
	for i, r := range records {
		r.ID = model.ID(strings.TrimSpace(string(r.ID)))
		if err := r.Validate(); err != nil {
			metrics.RecordRejected(len(records))
			metrics.RecordErrorByComponent("repository", "invalid_record")
			return nil, fmt.Errorf("%w: record %d: %w", ErrInvalidRecord, i, err)
		}
		batch[i] = r
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.snapshot.Load()
	next := &Snapshot{
		Records: make([]model.WeeklyRecord, len(cur.Records), len(cur.Records)+len(batch)),
		index:   make(map[model.ID]int, len(cur.index)+len(batch)),
	}
	copy(next.Records, cur.Records)
	for id, pos := range cur.index {
		next.index[id] = pos
	}

	ids := make([]model.ID, len(batch))
	for i, r := range batch {
		if r.ID == "" {
			r.ID = s.newID()
		}
		if pos, ok := next.index[r.ID]; ok {
			next.Records[pos] = r
		} else {
			next.index[r.ID] = len(next.Records)
			next.Records = append(next.Records, r)
		}
		ids[i] = r.ID
	}

	s.snapshot.Store(next)
	metrics.IncrementStoreSnapshotCount()
	metrics.RecordIngested(len(batch))
	metrics.UpdateRecordsStored(len(next.Records))
	return ids, nil
}

// Get returns one record of the snapshot. Returns ErrNotFound if the id is
// unknown.
func (snap *Snapshot) Get(id model.ID) (model.WeeklyRecord, error) {
	pos, ok := snap.index[model.ID(strings.TrimSpace(string(id)))]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.WeeklyRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return snap.Records[pos], nil
}

// Get implements Store.Get.
func (s *MemoryStore) Get(ctx context.Context, id model.ID) (model.WeeklyRecord, error) {
	return s.Snapshot().Get(id)
}

// All implements Store.All. The returned slice is a copy.
func (s *MemoryStore) All(ctx context.Context) []model.WeeklyRecord {
	snap := s.snapshot.Load()
	out := make([]model.WeeklyRecord, len(snap.Records))
	copy(out, snap.Records)
	return out
}

// Count implements Store.Count.
func (s *MemoryStore) Count(ctx context.Context) int {
	return len(s.snapshot.Load().Records)
}

// Snapshot implements Store.Snapshot. Callers must not modify the result.
func (s *MemoryStore) Snapshot() *Snapshot {
	return s.snapshot.Load()
}
