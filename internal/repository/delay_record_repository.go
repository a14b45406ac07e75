package repository

import (
	"time"

	"github.com/arborline/production-board/internal/domain"
)

// DelayRecordRepository owns the append-only collection of delay records.
// Records are never mutated or deleted once appended.
type DelayRecordRepository struct {
	records []domain.DelayRecord
}

// NewDelayRecordRepository creates an empty in-memory store
func NewDelayRecordRepository() *DelayRecordRepository {
	return &DelayRecordRepository{records: []domain.DelayRecord{}}
}

// Append adds the record to a new collection snapshot
func (r *DelayRecordRepository) Append(record domain.DelayRecord) {
	next := make([]domain.DelayRecord, 0, len(r.records)+1)
	next = append(next, r.records...)
	next = append(next, record)
	r.records = next
}

// List returns all records in creation order
func (r *DelayRecordRepository) List() []domain.DelayRecord {
	out := make([]domain.DelayRecord, len(r.records))
	copy(out, r.records)
	return out
}

// ListCreatedSince returns records created at or after the cutoff
func (r *DelayRecordRepository) ListCreatedSince(cutoff time.Time) []domain.DelayRecord {
	out := make([]domain.DelayRecord, 0, len(r.records))
	for _, record := range r.records {
		if !record.CreatedAt.Before(cutoff) {
			out = append(out, record)
		}
	}
	return out
}

// Count returns the all-time number of records
func (r *DelayRecordRepository) Count() int {
	return len(r.records)
}
