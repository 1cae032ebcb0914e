package repository // repository defines data access for seats

import (
    "context"      // context allows query cancellation and timeouts
    "database/sql" // sql provides DB primitives
    "errors"       // errors for sentinel comparisons
    "strings"      // strings builds multi-row insert statements

    "github.com/iliyamo/train-seat-reservation/internal/model"
    "github.com/iliyamo/train-seat-reservation/internal/store"
)

// SeatRepo implements store.SeatStore on MySQL.  Reservation commits
// use per-seat conditional updates inside one transaction: each seat
// is claimed with `... WHERE id = ? AND reserved_by IS NULL`, and a
// zero rows-affected result for any seat rolls back the whole
// transaction with store.ErrSeatConflict.  That replaces the
// read-then-write sequence the original system used, which let two
// requests reserve the same seat.
type SeatRepo struct {
    db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
    return &SeatRepo{db: db}
}

const seatColumns = `id, row_num, seat_number, reserved_by, version, created_at, updated_at`

func scanSeat(row interface{ Scan(...any) error }) (model.Seat, error) {
    var s model.Seat
    var reservedBy sql.NullInt64
    err := row.Scan(&s.ID, &s.Row, &s.SeatNumber, &reservedBy, &s.Version, &s.CreatedAt, &s.UpdatedAt)
    if err != nil {
        return model.Seat{}, err
    }
    if reservedBy.Valid {
        uid := uint64(reservedBy.Int64)
        s.ReservedBy = &uid
    }
    return s, nil
}

// ListSeats retrieves the whole chart ordered by row then seat_number.
func (r *SeatRepo) ListSeats(ctx context.Context) ([]model.Seat, error) {
    const q = `SELECT ` + seatColumns + ` FROM seats ORDER BY row_num, seat_number`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var result []model.Seat
    for rows.Next() {
        s, err := scanSeat(rows)
        if err != nil {
            return nil, err
        }
        result = append(result, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}

// ReserveSeats claims every seat in seatIDs for userID atomically.
// The conditional update is the commit-time check: a seat reserved by
// a concurrent transaction since planning no longer matches
// `reserved_by IS NULL`, affects zero rows and aborts the commit.
func (r *SeatRepo) ReserveSeats(ctx context.Context, seatIDs []uint64, userID uint64) ([]model.Seat, error) {
    if len(seatIDs) == 0 {
        return nil, nil
    }
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const claim = `UPDATE seats
	               SET reserved_by = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
	               WHERE id = ? AND reserved_by IS NULL`
    for _, id := range seatIDs {
        res, err := tx.ExecContext(ctx, claim, userID, id)
        if err != nil {
            return nil, err
        }
        n, err := res.RowsAffected()
        if err != nil {
            return nil, err
        }
        if n == 0 {
            // Either the seat vanished or someone beat us to it.
            var exists int
            if err := tx.QueryRowContext(ctx, `SELECT 1 FROM seats WHERE id = ?`, id).Scan(&exists); err != nil {
                if errors.Is(err, sql.ErrNoRows) {
                    return nil, store.ErrSeatNotFound
                }
                return nil, err
            }
            return nil, store.ErrSeatConflict
        }
    }

    reserved, err := seatsByIDsTx(ctx, tx, seatIDs)
    if err != nil {
        return nil, err
    }
    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    return reserved, nil
}

// seatsByIDsTx loads seats by id within a transaction, ordered by
// row then seat_number.
func seatsByIDsTx(ctx context.Context, tx *sql.Tx, seatIDs []uint64) ([]model.Seat, error) {
    placeholders := make([]string, len(seatIDs))
    args := make([]interface{}, len(seatIDs))
    for i, id := range seatIDs {
        placeholders[i] = "?"
        args[i] = id
    }
    q := `SELECT ` + seatColumns + ` FROM seats WHERE id IN (` +
        strings.Join(placeholders, ",") + `) ORDER BY row_num, seat_number`
    rows, err := tx.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var result []model.Seat
    for rows.Next() {
        s, err := scanSeat(rows)
        if err != nil {
            return nil, err
        }
        result = append(result, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}

// ReleaseSeat clears the reservation of a seat owned by userID.  The
// ownership check runs in the same conditional update that clears the
// column, so a concurrent release or re-reservation cannot slip in
// between check and write.
func (r *SeatRepo) ReleaseSeat(ctx context.Context, seatID, userID uint64) (*model.Seat, error) {
    const q = `UPDATE seats
	           SET reserved_by = NULL, version = version + 1, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND reserved_by = ?`
    res, err := r.db.ExecContext(ctx, q, seatID, userID)
    if err != nil {
        return nil, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return nil, err
    }
    if n == 0 {
        // Distinguish the failure for the caller.
        var reservedBy sql.NullInt64
        err := r.db.QueryRowContext(ctx, `SELECT reserved_by FROM seats WHERE id = ?`, seatID).Scan(&reservedBy)
        if errors.Is(err, sql.ErrNoRows) {
            return nil, store.ErrSeatNotFound
        }
        if err != nil {
            return nil, err
        }
        if !reservedBy.Valid {
            return nil, store.ErrSeatNotReserved
        }
        return nil, store.ErrNotSeatOwner
    }
    seat, err := r.getByID(ctx, seatID)
    if err != nil {
        return nil, err
    }
    return seat, nil
}

func (r *SeatRepo) getByID(ctx context.Context, id uint64) (*model.Seat, error) {
    const q = `SELECT ` + seatColumns + ` FROM seats WHERE id = ?`
    s, err := scanSeat(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, store.ErrSeatNotFound
        }
        return nil, err
    }
    return &s, nil
}

// ResetSeats releases every reserved seat and reports how many rows changed.
func (r *SeatRepo) ResetSeats(ctx context.Context) (int64, error) {
    const q = `UPDATE seats
	           SET reserved_by = NULL, version = version + 1, updated_at = CURRENT_TIMESTAMP
	           WHERE reserved_by IS NOT NULL`
    res, err := r.db.ExecContext(ctx, q)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// CreateChart wipes the seats table and bulk-inserts a fresh chart,
// one rowCapacities entry per row, inside a single transaction.
func (r *SeatRepo) CreateChart(ctx context.Context, rowCapacities []uint32) ([]model.Seat, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if _, err := tx.ExecContext(ctx, `DELETE FROM seats`); err != nil {
        return nil, err
    }

    query := `INSERT INTO seats (row_num, seat_number) VALUES `
    var args []interface{}
    first := true
    for i, capacity := range rowCapacities {
        for n := uint32(1); n <= capacity; n++ {
            if !first {
                query += ","
            }
            first = false
            query += "(?, ?)"
            args = append(args, uint32(i+1), n)
        }
    }
    if len(args) == 0 {
        return nil, nil
    }
    if _, err := tx.ExecContext(ctx, query, args...); err != nil {
        return nil, err
    }

    const sel = `SELECT ` + seatColumns + ` FROM seats ORDER BY row_num, seat_number`
    rows, err := tx.QueryContext(ctx, sel)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var created []model.Seat
    for rows.Next() {
        s, err := scanSeat(rows)
        if err != nil {
            return nil, err
        }
        created = append(created, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    return created, nil
}
