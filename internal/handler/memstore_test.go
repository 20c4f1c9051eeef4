package handler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/repository"
)

// memEventStore is a mutex-guarded in-memory seat pool.  It preserves
// the contract of repository.EventRepo: the sufficiency check and the
// decrement happen under one lock, so it is safe for the concurrency
// tests to hammer it from many goroutines.
type memEventStore struct {
	mu sync.Mutex
	ev model.Event
}

func newMemEventStore(eventID, name string, total, available, version int64) *memEventStore {
	return &memEventStore{ev: model.Event{
		EventID:        eventID,
		Name:           name,
		TotalSeats:     total,
		AvailableSeats: available,
		Version:        version,
	}}
}

func (s *memEventStore) TryReserve(_ context.Context, eventID string, n int64) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if eventID != s.ev.EventID {
		return nil, repository.ErrEventNotFound
	}
	if s.ev.AvailableSeats < n {
		return nil, repository.ErrInsufficientSeats
	}
	s.ev.AvailableSeats -= n
	s.ev.Version++
	cp := s.ev
	return &cp, nil
}

func (s *memEventStore) Credit(_ context.Context, eventID string, n int64) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if eventID != s.ev.EventID {
		return nil, repository.ErrEventNotFound
	}
	s.ev.AvailableSeats += n
	s.ev.Version++
	cp := s.ev
	return &cp, nil
}

func (s *memEventStore) GetByID(_ context.Context, eventID string) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if eventID != s.ev.EventID {
		return nil, repository.ErrEventNotFound
	}
	cp := s.ev
	return &cp, nil
}

// memReservationStore is an in-memory ledger keyed by reservation id.
// CancelIfConfirmed applies the status predicate under the lock, mirroring
// the conditional UPDATE of repository.ReservationRepo.
type memReservationStore struct {
	mu   sync.Mutex
	rows map[string]model.Reservation
}

func newMemReservationStore() *memReservationStore {
	return &memReservationStore{rows: make(map[string]model.Reservation)}
}

func (s *memReservationStore) Create(_ context.Context, res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res.Status = model.StatusConfirmed
	res.CreatedAt = time.Now().UTC()
	s.rows[res.ReservationID] = *res
	return nil
}

func (s *memReservationStore) GetByID(_ context.Context, reservationID string) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[reservationID]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	cp := row
	return &cp, nil
}

func (s *memReservationStore) CancelIfConfirmed(_ context.Context, reservationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[reservationID]
	if !ok || row.Status != model.StatusConfirmed {
		return repository.ErrReservationNotFound
	}
	row.Status = model.StatusCancelled
	s.rows[reservationID] = row
	return nil
}

func (s *memReservationStore) CountByStatus(_ context.Context, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, row := range s.rows {
		if row.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *memReservationStore) List(_ context.Context, statusFilter string) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Reservation, 0, len(s.rows))
	for _, row := range s.rows {
		if statusFilter == "" || row.Status == statusFilter {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
