package adapter

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
	repository "github.com/FlintShadey/huddleuptime/internal/pkg/availability/persistence/repository/port"
)

// MemoryAvailabilityRepository keeps records in process memory. Every change
// is reported to the notify func, standing in for the database trigger.
type MemoryAvailabilityRepository struct {
	mu      sync.RWMutex
	records map[availability.Key]availability.Record
	nextID  int64
	notify  func(availability.ChangeEvent)
}

func NewMemoryAvailabilityRepository(notify func(availability.ChangeEvent)) *MemoryAvailabilityRepository {
	return &MemoryAvailabilityRepository{
		records: make(map[availability.Key]availability.Record),
		notify:  notify,
	}
}

var _ repository.AvailabilityRepository = (*MemoryAvailabilityRepository)(nil)

func (m *MemoryAvailabilityRepository) ListAll(ctx context.Context) ([]availability.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedLocked(func(availability.Record) bool { return true }), nil
}

func (m *MemoryAvailabilityRepository) ListByUser(ctx context.Context, userName string) ([]availability.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedLocked(func(r availability.Record) bool { return r.UserName == userName }), nil
}

func (m *MemoryAvailabilityRepository) Insert(ctx context.Context, r availability.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	if _, ok := m.records[r.Key()]; ok {
		m.mu.Unlock()
		return repository.ErrDuplicate
	}
	r = m.putLocked(r)
	m.mu.Unlock()

	m.emit(availability.Inserted(r))
	return nil
}

func (m *MemoryAvailabilityRepository) Delete(ctx context.Context, userName string, date caldate.Date) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := availability.Key{UserName: userName, Date: date}
	m.mu.Lock()
	old, ok := m.records[key]
	delete(m.records, key)
	m.mu.Unlock()

	if ok {
		m.emit(availability.Deleted(old))
	}
	return nil
}

func (m *MemoryAvailabilityRepository) DeleteByUser(ctx context.Context, userName string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	removed := m.deleteWhereLocked(func(r availability.Record) bool { return r.UserName == userName })
	m.mu.Unlock()

	m.emitAll(removed, nil)
	return int64(len(removed)), nil
}

func (m *MemoryAvailabilityRepository) ReplaceForUser(ctx context.Context, userName string, records []availability.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	seen := make(map[availability.Key]struct{}, len(records))
	for _, r := range records {
		if r.UserName != userName {
			m.mu.Unlock()
			return fmt.Errorf("MemoryAvailabilityRepository: record for %q in replace of %q", r.UserName, userName)
		}
		if _, dup := seen[r.Key()]; dup {
			m.mu.Unlock()
			return repository.ErrDuplicate
		}
		seen[r.Key()] = struct{}{}
	}
	removed := m.deleteWhereLocked(func(r availability.Record) bool { return r.UserName == userName })
	added := make([]availability.Record, 0, len(records))
	for _, r := range records {
		added = append(added, m.putLocked(r))
	}
	m.mu.Unlock()

	m.emitAll(removed, added)
	return nil
}

func (m *MemoryAvailabilityRepository) DeleteBefore(ctx context.Context, cutoff caldate.Date) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	removed := m.deleteWhereLocked(func(r availability.Record) bool { return r.Date.Before(cutoff) })
	m.mu.Unlock()

	m.emitAll(removed, nil)
	return int64(len(removed)), nil
}

func (m *MemoryAvailabilityRepository) putLocked(r availability.Record) availability.Record {
	m.nextID++
	r.ID = m.nextID
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = time.Now().UTC()
	}
	m.records[r.Key()] = r
	return r
}

func (m *MemoryAvailabilityRepository) deleteWhereLocked(match func(availability.Record) bool) []availability.Record {
	var removed []availability.Record
	for k, r := range m.records {
		if match(r) {
			removed = append(removed, r)
			delete(m.records, k)
		}
	}
	slices.SortFunc(removed, availability.CompareRecords)
	return removed
}

func (m *MemoryAvailabilityRepository) sortedLocked(match func(availability.Record) bool) []availability.Record {
	out := make([]availability.Record, 0, len(m.records))
	for _, r := range m.records {
		if match(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, availability.CompareRecords)
	return out
}

func (m *MemoryAvailabilityRepository) emitAll(removed, added []availability.Record) {
	for _, r := range removed {
		m.emit(availability.Deleted(r))
	}
	for _, r := range added {
		m.emit(availability.Inserted(r))
	}
}

func (m *MemoryAvailabilityRepository) emit(ev availability.ChangeEvent) {
	if m.notify != nil {
		m.notify(ev)
	}
}
