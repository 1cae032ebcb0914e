package allocation

import (
    "errors"

    "github.com/iliyamo/train-seat-reservation/internal/model"
)

// ErrNoSelection is returned when no strategy produced a selection
// even though the view reported enough free seats.  The nearest-fill
// fallback makes this unreachable for well-formed views; callers
// should treat it as an internal invariant violation, not as a user
// error.
var ErrNoSelection = errors.New("no strategy produced a selection")

// Plan selects exactly count seats from the view.  Three strategies
// are tried in fixed priority order, each scanning rows in ascending
// row-number order and seats in ascending seat-number order:
//
//  1. whole row: a completely untouched row that can hold the group
//     gives up its lowest-numbered seats.
//  2. contiguous run: the first run of exactly count consecutive seat
//     numbers within a single row.
//  3. nearest fill: the first count free seats of the flattened chart,
//     ignoring contiguity.
//
// Plan is pure and deterministic: the same view and count always yield
// the same selection.  The caller is responsible for validating count
// against the row capacity policy and for classifying the capacity
// errors before planning.
func Plan(v View, count int) ([]model.Seat, error) {
    if count < 1 || count > v.TotalFree {
        return nil, ErrNoSelection
    }
    if sel := planWholeRow(v, count); sel != nil {
        return sel, nil
    }
    if sel := planContiguousRun(v, count); sel != nil {
        return sel, nil
    }
    if sel := planNearestFill(v, count); sel != nil {
        return sel, nil
    }
    return nil, ErrNoSelection
}

// planWholeRow picks the first fully empty row that can hold the group.
func planWholeRow(v View, count int) []model.Seat {
    for _, row := range v.Rows {
        if len(row.Free) == row.Capacity && count <= row.Capacity {
            return clone(row.Free[:count])
        }
    }
    return nil
}

// planContiguousRun finds the first run of exactly count consecutive
// seat numbers.  The run resets whenever the next free seat is not the
// immediate neighbour of the previous one.
func planContiguousRun(v View, count int) []model.Seat {
    for _, row := range v.Rows {
        if len(row.Free) < count {
            continue
        }
        start := 0
        for i := range row.Free {
            if i > start && row.Free[i].SeatNumber != row.Free[i-1].SeatNumber+1 {
                start = i
            }
            if i-start+1 == count {
                return clone(row.Free[start : i+1])
            }
        }
    }
    return nil
}

// planNearestFill takes the first count seats in row-then-seat order.
func planNearestFill(v View, count int) []model.Seat {
    sel := make([]model.Seat, 0, count)
    for _, row := range v.Rows {
        for _, s := range row.Free {
            sel = append(sel, s)
            if len(sel) == count {
                return sel
            }
        }
    }
    return nil
}

func clone(seats []model.Seat) []model.Seat {
    out := make([]model.Seat, len(seats))
    copy(out, seats)
    return out
}
