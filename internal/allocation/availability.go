// Package allocation implements the seat selection engine: a read
// projection of the chart grouped by row and a deterministic planner
// that picks which seats satisfy a request for N adjoining seats.
// The package performs no I/O; callers feed it a snapshot of the
// chart and commit the returned selection through the store layer.
package allocation

import (
    "sort"

    "github.com/iliyamo/train-seat-reservation/internal/model"
)

// RowView is one row of the availability projection.  Capacity is the
// total number of seats in the row (reserved or not) so the planner
// can recognize an untouched row.  Free holds the row's unreserved
// seats ordered by ascending seat number.
type RowView struct {
    Row      uint32
    Capacity int
    Free     []model.Seat
}

// View is the availability projection of a chart snapshot.  Rows are
// ordered by ascending row number and rows without free seats are
// omitted.  TotalFree is the unreserved seat count across the chart.
type View struct {
    Rows      []RowView
    TotalFree int
}

// BuildView derives the availability projection from a chart
// snapshot.  The input may be in any order; the projection is sorted
// by row then seat number.  Callers that need the projection to stay
// consistent with a later commit must rely on the store's commit-time
// conflict check rather than on this snapshot.
func BuildView(seats []model.Seat) View {
    capacity := map[uint32]int{}
    free := map[uint32][]model.Seat{}
    for _, s := range seats {
        capacity[s.Row]++
        if !s.IsReserved() {
            free[s.Row] = append(free[s.Row], s)
        }
    }

    // Row iteration order is part of the planner contract, so the map
    // keys are sorted explicitly rather than relying on range order.
    rows := make([]uint32, 0, len(free))
    for r := range free {
        rows = append(rows, r)
    }
    sort.Slice(rows, func(i, j int) bool { return rows[i] < rows[j] })

    v := View{Rows: make([]RowView, 0, len(rows))}
    for _, r := range rows {
        seats := free[r]
        sort.Slice(seats, func(i, j int) bool { return seats[i].SeatNumber < seats[j].SeatNumber })
        v.Rows = append(v.Rows, RowView{Row: r, Capacity: capacity[r], Free: seats})
        v.TotalFree += len(seats)
    }
    return v
}
