package store

import (
    "context"
    "sort"
    "sync"
    "time"

    "github.com/iliyamo/train-seat-reservation/internal/model"
)

// MemoryStore is an in-process SeatStore guarded by a single mutex.
// It backs tests and local development where no MySQL instance is
// available.  The mutex makes every operation's read-check-write
// sequence atomic, which is all the SeatStore contract asks for; the
// chart is small enough that a single lock does not matter here.
type MemoryStore struct {
    mu     sync.Mutex
    seats  map[uint64]*model.Seat
    nextID uint64
}

// NewMemoryStore returns an empty MemoryStore.  Call CreateChart to
// populate it.
func NewMemoryStore() *MemoryStore {
    return &MemoryStore{seats: make(map[uint64]*model.Seat), nextID: 1}
}

// ListSeats returns a copy of every seat ordered by row then seat number.
func (m *MemoryStore) ListSeats(ctx context.Context) ([]model.Seat, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    out := make([]model.Seat, 0, len(m.seats))
    for _, s := range m.seats {
        out = append(out, copySeat(s))
    }
    sortSeats(out)
    return out, nil
}

// ReserveSeats claims all given seats for userID, or none of them.
func (m *MemoryStore) ReserveSeats(ctx context.Context, seatIDs []uint64, userID uint64) ([]model.Seat, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    // Verify the whole selection before touching any seat so a
    // conflict leaves the chart exactly as it was.
    picked := make([]*model.Seat, 0, len(seatIDs))
    for _, id := range seatIDs {
        s, ok := m.seats[id]
        if !ok {
            return nil, ErrSeatNotFound
        }
        if s.ReservedBy != nil {
            return nil, ErrSeatConflict
        }
        picked = append(picked, s)
    }
    now := time.Now().UTC()
    out := make([]model.Seat, 0, len(picked))
    for _, s := range picked {
        uid := userID
        s.ReservedBy = &uid
        s.Version++
        s.UpdatedAt = now
        out = append(out, copySeat(s))
    }
    sortSeats(out)
    return out, nil
}

// ReleaseSeat clears a reservation after checking ownership.
func (m *MemoryStore) ReleaseSeat(ctx context.Context, seatID, userID uint64) (*model.Seat, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    s, ok := m.seats[seatID]
    if !ok {
        return nil, ErrSeatNotFound
    }
    if s.ReservedBy == nil {
        return nil, ErrSeatNotReserved
    }
    if *s.ReservedBy != userID {
        return nil, ErrNotSeatOwner
    }
    s.ReservedBy = nil
    s.Version++
    s.UpdatedAt = time.Now().UTC()
    released := copySeat(s)
    return &released, nil
}

// ResetSeats releases every reserved seat.
func (m *MemoryStore) ResetSeats(ctx context.Context) (int64, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    var n int64
    now := time.Now().UTC()
    for _, s := range m.seats {
        if s.ReservedBy != nil {
            s.ReservedBy = nil
            s.Version++
            s.UpdatedAt = now
            n++
        }
    }
    return n, nil
}

// CreateChart discards the current chart and numbers a fresh one.
func (m *MemoryStore) CreateChart(ctx context.Context, rowCapacities []uint32) ([]model.Seat, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.seats = make(map[uint64]*model.Seat)
    now := time.Now().UTC()
    var out []model.Seat
    for i, capacity := range rowCapacities {
        for n := uint32(1); n <= capacity; n++ {
            s := &model.Seat{
                ID:         m.nextID,
                Row:        uint32(i + 1),
                SeatNumber: n,
                CreatedAt:  now,
                UpdatedAt:  now,
            }
            m.nextID++
            m.seats[s.ID] = s
            out = append(out, copySeat(s))
        }
    }
    sortSeats(out)
    return out, nil
}

func copySeat(s *model.Seat) model.Seat {
    out := *s
    if s.ReservedBy != nil {
        uid := *s.ReservedBy
        out.ReservedBy = &uid
    }
    return out
}

func sortSeats(seats []model.Seat) {
    sort.Slice(seats, func(i, j int) bool {
        if seats[i].Row != seats[j].Row {
            return seats[i].Row < seats[j].Row
        }
        return seats[i].SeatNumber < seats[j].SeatNumber
    })
}
