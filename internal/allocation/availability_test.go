package allocation

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/train-seat-reservation/internal/model"
)

// chartSeats builds an in-memory chart with the given row capacities,
// ids assigned sequentially in row/seat order.
func chartSeats(caps ...uint32) []model.Seat {
    var out []model.Seat
    id := uint64(1)
    for i, capacity := range caps {
        for n := uint32(1); n <= capacity; n++ {
            out = append(out, model.Seat{ID: id, Row: uint32(i + 1), SeatNumber: n})
            id++
        }
    }
    return out
}

// reserve marks the seat at (row, num) as taken by owner.
func reserve(seats []model.Seat, owner uint64, row, num uint32) {
    for i := range seats {
        if seats[i].Row == row && seats[i].SeatNumber == num {
            uid := owner
            seats[i].ReservedBy = &uid
            return
        }
    }
    panic("no such seat in test chart")
}

func TestBuildViewSortsShuffledInput(t *testing.T) {
    seats := chartSeats(3, 2)
    // Feed the seats in reverse to prove ordering comes from the view.
    shuffled := make([]model.Seat, 0, len(seats))
    for i := len(seats) - 1; i >= 0; i-- {
        shuffled = append(shuffled, seats[i])
    }

    v := BuildView(shuffled)
    require.Len(t, v.Rows, 2)
    assert.Equal(t, 5, v.TotalFree)

    assert.Equal(t, uint32(1), v.Rows[0].Row)
    assert.Equal(t, uint32(2), v.Rows[1].Row)
    for _, row := range v.Rows {
        for i := 1; i < len(row.Free); i++ {
            assert.Less(t, row.Free[i-1].SeatNumber, row.Free[i].SeatNumber)
        }
    }
}

func TestBuildViewOmitsFullRows(t *testing.T) {
    seats := chartSeats(2, 3)
    reserve(seats, 7, 1, 1)
    reserve(seats, 7, 1, 2)

    v := BuildView(seats)
    require.Len(t, v.Rows, 1)
    assert.Equal(t, uint32(2), v.Rows[0].Row)
    assert.Equal(t, 3, v.TotalFree)
}

func TestBuildViewCapacityCountsReservedSeats(t *testing.T) {
    seats := chartSeats(4)
    reserve(seats, 7, 1, 2)

    v := BuildView(seats)
    require.Len(t, v.Rows, 1)
    assert.Equal(t, 4, v.Rows[0].Capacity)
    assert.Len(t, v.Rows[0].Free, 3)
}

func TestBuildViewEmptyInput(t *testing.T) {
    v := BuildView(nil)
    assert.Empty(t, v.Rows)
    assert.Zero(t, v.TotalFree)
}
