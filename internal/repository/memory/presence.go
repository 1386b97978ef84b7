package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/magiclogon/attendance-backend-go/internal/domain/presence"
)

type presenceKey struct {
	employeeID string
	date       time.Time
}

// PresenceRepository is a mutex-guarded in-memory implementation of
// presence.PresenceRepository. It honors the same conditional-write contract
// as the PostgreSQL repository, which makes it usable for exercising the
// gateway and the periodic jobs without a database.
type PresenceRepository struct {
	mu      sync.Mutex
	records map[presenceKey]presence.Presence
}

func NewPresenceRepository() *PresenceRepository {
	return &PresenceRepository{
		records: make(map[presenceKey]presence.Presence),
	}
}

func keyOf(employeeID string, date time.Time) presenceKey {
	return presenceKey{employeeID: employeeID, date: presence.DateOf(date).UTC()}
}

// GetByEmployeeAndDate implements presence.PresenceRepository.
func (r *PresenceRepository) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*presence.Presence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[keyOf(employeeID, date)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// CreateIfAbsent implements presence.PresenceRepository.
func (r *PresenceRepository) CreateIfAbsent(_ context.Context, rec presence.Presence) (presence.Presence, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(rec.EmployeeID, rec.Date)
	if existing, ok := r.records[key]; ok {
		return existing, false, nil
	}

	now := time.Now()
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	r.records[key] = rec

	return rec, true, nil
}

// UpdateIfStatus implements presence.PresenceRepository.
func (r *PresenceRepository) UpdateIfStatus(_ context.Context, rec presence.Presence, expected presence.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(rec.EmployeeID, rec.Date)
	stored, ok := r.records[key]
	if !ok || stored.Status != expected {
		return false, nil
	}

	stored.Status = rec.Status
	stored.CheckinTime = rec.CheckinTime
	stored.CheckoutTime = rec.CheckoutTime
	stored.UpdatedAt = time.Now()
	r.records[key] = stored

	return true, nil
}

// ListByOrganizationAndDate implements presence.PresenceRepository.
func (r *PresenceRepository) ListByOrganizationAndDate(_ context.Context, organizationID string, date time.Time) ([]presence.Presence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := presence.DateOf(date).UTC()

	var records []presence.Presence
	for key, rec := range r.records {
		if rec.OrganizationID == organizationID && key.date.Equal(day) {
			records = append(records, rec)
		}
	}
	return records, nil
}

// CountByStatus implements presence.PresenceRepository.
func (r *PresenceRepository) CountByStatus(_ context.Context, organizationID string, date time.Time, statuses []presence.Status) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := presence.DateOf(date).UTC()

	var count int64
	for key, rec := range r.records {
		if rec.OrganizationID != organizationID || !key.date.Equal(day) {
			continue
		}
		for _, s := range statuses {
			if rec.Status == s {
				count++
				break
			}
		}
	}
	return count, nil
}
