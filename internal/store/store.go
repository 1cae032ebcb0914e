// Package store defines the persistence contract for the seating
// chart together with the sentinel errors shared by every
// implementation.  The MySQL repository and the in-memory store both
// satisfy SeatStore, so the reservation service and its tests are
// indifferent to which one backs them.
package store

import (
    "context"
    "errors"

    "github.com/iliyamo/train-seat-reservation/internal/model"
)

// ErrSeatNotFound is returned when no seat with the given id exists.
var ErrSeatNotFound = errors.New("seat not found")

// ErrSeatConflict is returned when a multi-seat commit finds at least
// one selected seat already reserved.  The commit is rolled back as a
// whole; no seat from the selection is left reserved.
var ErrSeatConflict = errors.New("seat already reserved")

// ErrSeatNotReserved is returned when releasing a seat that has no
// current reservation.
var ErrSeatNotReserved = errors.New("seat is not reserved")

// ErrNotSeatOwner is returned when releasing a seat reserved by a
// different user.
var ErrNotSeatOwner = errors.New("seat reserved by another user")

// SeatStore is the chart's persistence boundary.  Implementations
// must make ReserveSeats and ReleaseSeat atomic with respect to each
// other: two operations may never both observe a seat as unreserved
// and both claim it.
type SeatStore interface {
    // ListSeats returns a snapshot of every seat, ordered by row then
    // seat number.
    ListSeats(ctx context.Context) ([]model.Seat, error)

    // ReserveSeats marks all given seats as reserved by userID, but
    // only if every one of them is still unreserved at commit time.
    // On success the updated seats are returned in row/seat order.
    // ErrSeatConflict means at least one seat was taken since the
    // caller planned its selection; nothing was written.
    ReserveSeats(ctx context.Context, seatIDs []uint64, userID uint64) ([]model.Seat, error)

    // ReleaseSeat clears the reservation of a single seat owned by
    // userID and returns the updated seat.
    ReleaseSeat(ctx context.Context, seatID, userID uint64) (*model.Seat, error)

    // ResetSeats clears every reservation and reports how many seats
    // were released.
    ResetSeats(ctx context.Context) (int64, error)

    // CreateChart replaces the chart with freshly numbered rows, one
    // entry in rowCapacities per row.  All created seats are returned.
    CreateChart(ctx context.Context, rowCapacities []uint32) ([]model.Seat, error)
}
