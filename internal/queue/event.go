// Package queue defines message payloads exchanged over the message
// broker plus the publisher and background consumer for them.
package queue

// SeatsReservedEvent is published after a reservation commit
// succeeds.  It carries the seat labels of the committed selection —
// the only place a multi-seat booking exists as a group — so
// downstream consumers can log or notify without querying the
// primary database.
type SeatsReservedEvent struct {
    UserID     uint64   `json:"user_id"`
    SeatIDs    []uint64 `json:"seat_ids"`
    SeatLabels []string `json:"seats"`
    Count      int      `json:"count"`
    ReservedAt string   `json:"reserved_at"`
}
