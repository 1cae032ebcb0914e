package handler

import (
    "errors"   // errors.Is for sentinel comparisons
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/train-seat-reservation/internal/service"
    "github.com/iliyamo/train-seat-reservation/internal/store"
)

// SeatHandler exposes the seating chart and the reservation engine
// over HTTP.  JWT authentication and role checks run in middleware;
// the handler only extracts the user id and maps the service's typed
// errors onto status codes.
type SeatHandler struct {
    Svc   *service.ReservationService
    Store store.SeatStore
}

// NewSeatHandler constructs a SeatHandler; both dependencies must be non-nil.
func NewSeatHandler(svc *service.ReservationService, st store.SeatStore) *SeatHandler {
    if svc == nil || st == nil {
        panic("nil dependency passed to NewSeatHandler")
    }
    return &SeatHandler{Svc: svc, Store: st}
}

// ListSeats handles GET /v1/seats.  It returns every seat with its
// reservation state plus the unreserved count, the same shape the
// availability view is built from.
func (h *SeatHandler) ListSeats(c echo.Context) error {
    seats, err := h.Store.ListSeats(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    unreserved := 0
    for _, s := range seats {
        if !s.IsReserved() {
            unreserved++
        }
    }
    return c.JSON(http.StatusOK, echo.Map{
        "seats":            seats,
        "unreserved_count": unreserved,
    })
}

// ReserveSeats handles POST /v1/seats/reserve.  The body carries the
// requested group size; the engine picks which seats to grant.
func (h *SeatHandler) ReserveSeats(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        Count int `json:"count"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    seats, err := h.Svc.RequestReservation(c.Request().Context(), userID, body.Count)
    switch {
    case err == nil:
        return c.JSON(http.StatusCreated, echo.Map{
            "seats": seats,
            "count": len(seats),
        })
    case errors.Is(err, service.ErrInvalidSeatCount):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "count must be between 1 and the row capacity"})
    case errors.Is(err, service.ErrAllSeatsFilled):
        return c.JSON(http.StatusConflict, echo.Map{"error": "all seats are filled"})
    case errors.Is(err, service.ErrInsufficientSeats):
        return c.JSON(http.StatusConflict, echo.Map{"error": "not enough free seats"})
    case errors.Is(err, store.ErrSeatConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": "seats were taken by another request, please retry"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation failed"})
    }
}

// CancelSeat handles POST /v1/seats/:id/cancel.  Cancellation is per
// seat and only the reserving user may release it.  Status codes
// follow the original service: 404 unknown seat, 400 not reserved,
// 401 reserved by someone else.
func (h *SeatHandler) CancelSeat(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    seatID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || seatID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
    }

    seat, err := h.Svc.RequestCancellation(c.Request().Context(), userID, seatID)
    switch {
    case err == nil:
        return c.JSON(http.StatusOK, seat)
    case errors.Is(err, store.ErrSeatNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
    case errors.Is(err, store.ErrSeatNotReserved):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat is not reserved"})
    case errors.Is(err, store.ErrNotSeatOwner):
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "booked by another user"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancellation failed"})
    }
}
