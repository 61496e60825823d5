package db

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is the slice of the pool the health endpoint needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the staffing database is reachable. Load
// balancers poll this, so the ping gets its own short deadline instead of
// inheriting the request timeout.
func HealthHandler(dbc Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		if err := dbc.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
