package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-seat-reservation/internal/handler"
    "github.com/iliyamo/train-seat-reservation/internal/middleware"
)

// RegisterSeats registers the seating-chart endpoints.  The listing
// is public so guests can preview the chart before registering.
// Reservation and cancellation require any authenticated role; reset
// and initialize are ADMIN only, the strictest of the guard variants
// the original service shipped.
func RegisterSeats(e *echo.Echo, h *handler.SeatHandler, jwtSecret string, listCache echo.MiddlewareFunc, extra ...echo.MiddlewareFunc) {
    if listCache != nil {
        e.GET("/v1/seats", h.ListSeats, listCache)
    } else {
        e.GET("/v1/seats", h.ListSeats)
    }

    g := e.Group(
        "/v1/seats",
        append([]echo.MiddlewareFunc{
            middleware.JWTAuth(jwtSecret),
            middleware.RequireRole("ADMIN", "CUSTOMER"),
        }, extra...)...,
    )
    g.POST("/reserve", h.ReserveSeats)
    g.POST("/:id/cancel", h.CancelSeat)

    admin := e.Group(
        "/v1/seats",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("ADMIN"),
    )
    admin.POST("/reset", h.ResetSeats)
    admin.POST("/initialize", h.InitializeSeats)
}
