package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"github.com/iliyamo/event-seat-reservation/internal/handler"
)

// RegisterRoutes registers routes that carry no business logic on the
// provided Echo instance.  The health check can be used by load
// balancers or monitoring systems to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterReservations registers the reservation API under /api.  The
// optional middleware (rate limiting for writes, response caching for
// reads) is applied per route group: mutations must never be served
// from cache, and reads should not consume rate-limit tokens.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, limit, cache echo.MiddlewareFunc) {
	writes := e.Group("/api")
	if limit != nil {
		writes.Use(limit)
	}
	writes.POST("/reservations", h.Reserve)
	writes.DELETE("/reservations/:id", h.Cancel)

	reads := e.Group("/api")
	if cache != nil {
		reads.Use(cache)
	}
	reads.GET("/reservations", h.Summary)
	reads.GET("/reservations/all", h.List)
}

// RegisterAdmin registers the administrative reset endpoint.  The
// handler enforces the x-admin-secret gate itself, so no middleware is
// applied here.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler) {
	e.POST("/api/admin/reset", a.Reset)
}
