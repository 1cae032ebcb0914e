package allocation

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/train-seat-reservation/internal/model"
)

func labels(seats []model.Seat) []string {
    out := make([]string, len(seats))
    for i, s := range seats {
        out[i] = s.Label()
    }
    return out
}

func TestPlanPrefersWholeRow(t *testing.T) {
    seats := chartSeats(7, 7)
    // Row 1 keeps a 4-seat contiguous run but is no longer untouched,
    // so a group of 4 must go to the fully empty row 2.
    reserve(seats, 9, 1, 6)

    sel, err := Plan(BuildView(seats), 4)
    require.NoError(t, err)
    assert.Equal(t, []string{"R2-S1", "R2-S2", "R2-S3", "R2-S4"}, labels(sel))
}

func TestPlanWholeRowTakesLowestSeats(t *testing.T) {
    seats := chartSeats(7, 7)

    sel, err := Plan(BuildView(seats), 3)
    require.NoError(t, err)
    assert.Equal(t, []string{"R1-S1", "R1-S2", "R1-S3"}, labels(sel))
}

func TestPlanWholeRowSkipsRowsTooSmall(t *testing.T) {
    // Row 1 is empty but only holds 3 seats; row 2 is empty and wide
    // enough, so the group of 5 lands there.
    seats := chartSeats(3, 7)

    sel, err := Plan(BuildView(seats), 5)
    require.NoError(t, err)
    assert.Equal(t, []string{"R2-S1", "R2-S2", "R2-S3", "R2-S4", "R2-S5"}, labels(sel))
}

func TestPlanFallsBackToContiguousRun(t *testing.T) {
    seats := chartSeats(7, 7)
    // Every row is touched, so the whole-row strategy cannot apply.
    reserve(seats, 9, 1, 1)
    reserve(seats, 9, 1, 2)
    reserve(seats, 9, 2, 4)

    sel, err := Plan(BuildView(seats), 3)
    require.NoError(t, err)
    assert.Equal(t, []string{"R1-S3", "R1-S4", "R1-S5"}, labels(sel))
}

func TestPlanContiguousRunResetsOnGaps(t *testing.T) {
    seats := chartSeats(7, 7)
    // Row 1 free seats: 1, 2, 4, 5, 6 — the first run of three is 4-6.
    reserve(seats, 9, 1, 3)
    reserve(seats, 9, 1, 7)
    reserve(seats, 9, 2, 1)
    reserve(seats, 9, 2, 3)
    reserve(seats, 9, 2, 5)

    sel, err := Plan(BuildView(seats), 3)
    require.NoError(t, err)
    assert.Equal(t, []string{"R1-S4", "R1-S5", "R1-S6"}, labels(sel))
}

func TestPlanNearestFillSpansRows(t *testing.T) {
    // Only isolated seats remain: no contiguous pair anywhere, so a
    // group of 3 gets the first three free seats in chart order.
    seats := chartSeats(4, 4)
    reserve(seats, 9, 1, 2)
    reserve(seats, 9, 1, 4)
    reserve(seats, 9, 2, 1)
    reserve(seats, 9, 2, 3)

    sel, err := Plan(BuildView(seats), 3)
    require.NoError(t, err)
    assert.Equal(t, []string{"R1-S1", "R1-S3", "R2-S2"}, labels(sel))
}

func TestPlanRejectsImpossibleCounts(t *testing.T) {
    v := BuildView(chartSeats(3))

    _, err := Plan(v, 0)
    assert.ErrorIs(t, err, ErrNoSelection)

    _, err = Plan(v, 4)
    assert.ErrorIs(t, err, ErrNoSelection)
}

func TestPlanAlwaysSucceedsWithinCapacity(t *testing.T) {
    // Heavily fragmented chart: whatever the shape, Plan must find a
    // selection for every count up to the free total.
    seats := chartSeats(7, 7, 7, 3)
    reserve(seats, 9, 1, 2)
    reserve(seats, 9, 1, 5)
    reserve(seats, 9, 2, 1)
    reserve(seats, 9, 2, 7)
    reserve(seats, 9, 3, 4)
    reserve(seats, 9, 4, 2)

    v := BuildView(seats)
    for count := 1; count <= v.TotalFree; count++ {
        sel, err := Plan(v, count)
        require.NoError(t, err, "count=%d", count)
        require.Len(t, sel, count)

        seen := map[uint64]bool{}
        for _, s := range sel {
            assert.False(t, s.IsReserved())
            assert.False(t, seen[s.ID], "duplicate seat in selection")
            seen[s.ID] = true
        }
    }
}

func TestPlanIsDeterministic(t *testing.T) {
    seats := chartSeats(7, 7, 3)
    reserve(seats, 9, 1, 4)
    reserve(seats, 9, 2, 2)

    v := BuildView(seats)
    first, err := Plan(v, 4)
    require.NoError(t, err)
    for i := 0; i < 10; i++ {
        again, err := Plan(BuildView(seats), 4)
        require.NoError(t, err)
        assert.Equal(t, labels(first), labels(again))
    }
}
