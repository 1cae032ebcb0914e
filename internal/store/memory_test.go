package store

import (
    "context"
    "sync"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/train-seat-reservation/internal/model"
)

func newChart(t *testing.T, caps ...uint32) *MemoryStore {
    t.Helper()
    m := NewMemoryStore()
    _, err := m.CreateChart(context.Background(), caps)
    require.NoError(t, err)
    return m
}

func TestCreateChartDefaultLayout(t *testing.T) {
    m := newChart(t, model.DefaultRowCapacities()...)

    seats, err := m.ListSeats(context.Background())
    require.NoError(t, err)
    require.Len(t, seats, 80)

    perRow := map[uint32]int{}
    for _, s := range seats {
        perRow[s.Row]++
        assert.False(t, s.IsReserved())
    }
    require.Len(t, perRow, 12)
    for row := uint32(1); row <= 11; row++ {
        assert.Equal(t, 7, perRow[row])
    }
    assert.Equal(t, 3, perRow[12])
}

func TestCreateChartReplacesExistingChart(t *testing.T) {
    ctx := context.Background()
    m := newChart(t, 2, 2)
    _, err := m.ReserveSeats(ctx, []uint64{1, 2}, 42)
    require.NoError(t, err)

    seats, err := m.CreateChart(ctx, []uint32{3})
    require.NoError(t, err)
    require.Len(t, seats, 3)
    for _, s := range seats {
        assert.False(t, s.IsReserved())
        assert.Equal(t, uint32(1), s.Row)
    }
}

func TestReserveSeatsClaimsAllOrNothing(t *testing.T) {
    ctx := context.Background()
    m := newChart(t, 3)

    got, err := m.ReserveSeats(ctx, []uint64{1, 2}, 42)
    require.NoError(t, err)
    require.Len(t, got, 2)
    for _, s := range got {
        require.NotNil(t, s.ReservedBy)
        assert.Equal(t, uint64(42), *s.ReservedBy)
        assert.Equal(t, uint32(1), s.Version)
    }

    // Overlapping claim fails entirely: seat 3 stays free even though
    // it appears first in the request.
    _, err = m.ReserveSeats(ctx, []uint64{3, 2}, 77)
    assert.ErrorIs(t, err, ErrSeatConflict)

    seats, err := m.ListSeats(ctx)
    require.NoError(t, err)
    assert.False(t, seats[2].IsReserved())
}

func TestReserveSeatsUnknownID(t *testing.T) {
    m := newChart(t, 2)
    _, err := m.ReserveSeats(context.Background(), []uint64{99}, 42)
    assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestReleaseSeatOwnership(t *testing.T) {
    ctx := context.Background()
    m := newChart(t, 2)
    _, err := m.ReserveSeats(ctx, []uint64{1}, 42)
    require.NoError(t, err)

    _, err = m.ReleaseSeat(ctx, 99, 42)
    assert.ErrorIs(t, err, ErrSeatNotFound)

    _, err = m.ReleaseSeat(ctx, 2, 42)
    assert.ErrorIs(t, err, ErrSeatNotReserved)

    _, err = m.ReleaseSeat(ctx, 1, 77)
    assert.ErrorIs(t, err, ErrNotSeatOwner)

    released, err := m.ReleaseSeat(ctx, 1, 42)
    require.NoError(t, err)
    assert.Nil(t, released.ReservedBy)
    assert.Equal(t, uint32(2), released.Version)

    // The released seat is reservable again, by anyone.
    _, err = m.ReserveSeats(ctx, []uint64{1}, 77)
    assert.NoError(t, err)
}

func TestResetSeatsReleasesEverything(t *testing.T) {
    ctx := context.Background()
    m := newChart(t, 3, 3)
    _, err := m.ReserveSeats(ctx, []uint64{1, 2, 5}, 42)
    require.NoError(t, err)

    n, err := m.ResetSeats(ctx)
    require.NoError(t, err)
    assert.Equal(t, int64(3), n)

    seats, err := m.ListSeats(ctx)
    require.NoError(t, err)
    for _, s := range seats {
        assert.False(t, s.IsReserved())
    }

    n, err = m.ResetSeats(ctx)
    require.NoError(t, err)
    assert.Zero(t, n)
}

func TestReserveSeatsConcurrentSingleWinner(t *testing.T) {
    ctx := context.Background()
    m := newChart(t, 7)

    const racers = 16
    var wg sync.WaitGroup
    wins := make(chan uint64, racers)
    for i := 0; i < racers; i++ {
        wg.Add(1)
        go func(userID uint64) {
            defer wg.Done()
            if _, err := m.ReserveSeats(ctx, []uint64{4}, userID); err == nil {
                wins <- userID
            }
        }(uint64(i + 1))
    }
    wg.Wait()
    close(wins)

    var winners []uint64
    for w := range wins {
        winners = append(winners, w)
    }
    require.Len(t, winners, 1)

    seats, err := m.ListSeats(ctx)
    require.NoError(t, err)
    require.NotNil(t, seats[3].ReservedBy)
    assert.Equal(t, winners[0], *seats[3].ReservedBy)
}
