// Package service orchestrates the reservation workflow on top of
// the allocation engine and a SeatStore: build the availability view,
// plan a selection, commit it, and retry the whole cycle when a
// concurrent request wins the race for a seat.
package service

import (
    "context"
    "errors"
    "log"
    "time"

    "github.com/iliyamo/train-seat-reservation/internal/allocation"
    "github.com/iliyamo/train-seat-reservation/internal/model"
    "github.com/iliyamo/train-seat-reservation/internal/queue"
    "github.com/iliyamo/train-seat-reservation/internal/store"
)

// ErrInvalidSeatCount is returned when the requested group size is
// outside [1, max group size].  Never retried.
var ErrInvalidSeatCount = errors.New("invalid seat count")

// ErrAllSeatsFilled is returned when the chart has no free seat at all.
var ErrAllSeatsFilled = errors.New("all seats are filled")

// ErrInsufficientSeats is returned when some seats are free but fewer
// than requested.  More capacity only appears through cancellation,
// so this is not retried either.
var ErrInsufficientSeats = errors.New("not enough free seats")

// ErrInvalidRowCapacity is returned by InitializeChart when a row
// capacity is zero.
var ErrInvalidRowCapacity = errors.New("row capacity must be positive")

// reserveAttempts bounds how many plan+commit cycles a single request
// may run before the conflict is surfaced to the caller.
const reserveAttempts = 3

// ReservationService wires the planner to a SeatStore.  MaxGroupSize
// caps how many seats one request may claim; it defaults to the
// reference layout's widest row.  Publish, when set, is invoked after
// each successful commit; publish failures are logged and ignored
// because the reservation has already committed.
type ReservationService struct {
    Store        store.SeatStore
    MaxGroupSize int
    Publish      func(ctx context.Context, ev queue.SeatsReservedEvent) error
}

// NewReservationService constructs a ReservationService around the
// given store with the default group-size policy.
func NewReservationService(st store.SeatStore) *ReservationService {
    if st == nil {
        panic("nil store passed to NewReservationService")
    }
    max := 0
    for _, c := range model.DefaultRowCapacities() {
        if int(c) > max {
            max = int(c)
        }
    }
    return &ReservationService{Store: st, MaxGroupSize: max}
}

// RequestReservation reserves count adjoining-as-possible seats for
// userID and returns them in row/seat order.  Each attempt rebuilds
// the availability view from current chart state, so a commit
// conflict replans against whatever is actually left.  Capacity
// errors are classified before planning; a conflict that survives all
// attempts is returned as store.ErrSeatConflict.
func (s *ReservationService) RequestReservation(ctx context.Context, userID uint64, count int) ([]model.Seat, error) {
    if count < 1 || count > s.MaxGroupSize {
        return nil, ErrInvalidSeatCount
    }
    for attempt := 0; attempt < reserveAttempts; attempt++ {
        seats, err := s.Store.ListSeats(ctx)
        if err != nil {
            return nil, err
        }
        view := allocation.BuildView(seats)
        if view.TotalFree == 0 {
            return nil, ErrAllSeatsFilled
        }
        if view.TotalFree < count {
            return nil, ErrInsufficientSeats
        }

        selection, err := allocation.Plan(view, count)
        if err != nil {
            // Unreachable while the fallback strategy holds; a bug in
            // the strategy chain, not a user-correctable condition.
            log.Printf("reservation: planner returned no selection for count=%d free=%d: %v", count, view.TotalFree, err)
            return nil, err
        }

        ids := make([]uint64, len(selection))
        for i, seat := range selection {
            ids[i] = seat.ID
        }
        reserved, err := s.Store.ReserveSeats(ctx, ids, userID)
        if errors.Is(err, store.ErrSeatConflict) {
            continue // replan against the reduced availability
        }
        if err != nil {
            return nil, err
        }
        s.publishReserved(ctx, userID, reserved)
        return reserved, nil
    }
    return nil, store.ErrSeatConflict
}

// RequestCancellation releases one seat owned by userID.
func (s *ReservationService) RequestCancellation(ctx context.Context, userID, seatID uint64) (*model.Seat, error) {
    return s.Store.ReleaseSeat(ctx, seatID, userID)
}

// ResetAllSeats releases every reservation and reports how many seats
// were freed.  No allocation logic is involved.
func (s *ReservationService) ResetAllSeats(ctx context.Context) (int64, error) {
    return s.Store.ResetSeats(ctx)
}

// InitializeChart replaces the chart.  An empty capacities slice
// selects the reference layout.  Zero-capacity rows are rejected so
// seat numbering stays contiguous from 1 in every row.
func (s *ReservationService) InitializeChart(ctx context.Context, rowCapacities []uint32) ([]model.Seat, error) {
    if len(rowCapacities) == 0 {
        rowCapacities = model.DefaultRowCapacities()
    }
    for _, c := range rowCapacities {
        if c == 0 {
            return nil, ErrInvalidRowCapacity
        }
    }
    return s.Store.CreateChart(ctx, rowCapacities)
}

func (s *ReservationService) publishReserved(ctx context.Context, userID uint64, reserved []model.Seat) {
    if s.Publish == nil {
        return
    }
    ev := queue.SeatsReservedEvent{
        UserID:     userID,
        SeatIDs:    make([]uint64, 0, len(reserved)),
        SeatLabels: make([]string, 0, len(reserved)),
        Count:      len(reserved),
        ReservedAt: time.Now().UTC().Format(time.RFC3339),
    }
    for _, seat := range reserved {
        ev.SeatIDs = append(ev.SeatIDs, seat.ID)
        ev.SeatLabels = append(ev.SeatLabels, seat.Label())
    }
    if err := s.Publish(ctx, ev); err != nil {
        log.Printf("reservation: publish event failed: %v", err)
    }
}
