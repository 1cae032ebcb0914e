package model

import (
    "strconv"
    "time"
)

// Seat is one seat of the coach seating chart as stored in the
// `seats` table.  Seats are uniquely identified by their (row,
// seat_number) pair, which never changes after the chart has been
// initialized.  A seat is reserved when ReservedBy holds a user id
// and free when it is nil.  Version increases on every reservation
// state change and backs the optimistic commit check.
//
// Fields:
//  ID         – primary key identifier.
//  Row        – 1-based row number within the chart.
//  SeatNumber – 1-based position of the seat within its row.
//  ReservedBy – id of the reserving user, nil when unreserved.
//  Version    – optimistic locking counter.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Seat struct {
    ID         uint64    `json:"id"`          // seats.id
    Row        uint32    `json:"row"`         // seats.row
    SeatNumber uint32    `json:"seat_number"` // seats.seat_number
    ReservedBy *uint64   `json:"reserved_by"` // seats.reserved_by (nullable)
    Version    uint32    `json:"-"`           // seats.version
    CreatedAt  time.Time `json:"created_at"`  // seats.created_at
    UpdatedAt  time.Time `json:"updated_at"`  // seats.updated_at
}

// IsReserved reports whether the seat currently belongs to a user.
func (s Seat) IsReserved() bool { return s.ReservedBy != nil }

// Label renders the seat position as "R3-S5" for logs and events.
func (s Seat) Label() string {
    return "R" + strconv.FormatUint(uint64(s.Row), 10) + "-S" + strconv.FormatUint(uint64(s.SeatNumber), 10)
}

// DefaultRowCapacities returns the reference coach layout: eleven rows
// of seven seats followed by a short row of three.
func DefaultRowCapacities() []uint32 {
    caps := make([]uint32, 0, 12)
    for i := 0; i < 11; i++ {
        caps = append(caps, 7)
    }
    return append(caps, 3)
}
