package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-seat-reservation/internal/service"
)

// ResetSeats handles POST /v1/seats/reset.  Every reservation is
// cleared in one statement.  The route is registered behind the ADMIN
// role guard.
func (h *SeatHandler) ResetSeats(c echo.Context) error {
    released, err := h.Svc.ResetAllSeats(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "message":        "all seats have been reset",
        "released_count": released,
    })
}

// InitializeSeats handles POST /v1/seats/initialize.  It rebuilds the
// chart from the requested per-row capacities, or the reference
// layout when the body omits them.  Existing seats and reservations
// are discarded.  ADMIN only.
func (h *SeatHandler) InitializeSeats(c echo.Context) error {
    var body struct {
        RowCapacities []uint32 `json:"row_capacities"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    seats, err := h.Svc.InitializeChart(c.Request().Context(), body.RowCapacities)
    if err != nil {
        if errors.Is(err, service.ErrInvalidRowCapacity) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "row capacities must be positive"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "initialization failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "message": "seats have been initialized",
        "count":   len(seats),
        "seats":   seats,
    })
}
