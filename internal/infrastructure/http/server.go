// Package http hosts the optional ops listener: liveness and Prometheus
// metrics for deployments that run the client unattended (kiosks,
// dashboards). It serves nothing user-facing.
package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// NewRouter builds the Echo instance with the ops routes registered.
func NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())

	e.GET("/healthz", liveness)                       // liveness – is the process alive?
	e.GET("/metrics", echoprometheus.NewHandler())    // default Prometheus registry

	return e
}

func liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start runs the listener in the background; a listen failure is logged,
// not fatal, since the ops surface is auxiliary.
func Start(e *echo.Echo, addr string, logger zerolog.Logger) {
	go func() {
		logger.Info().Str("addr", addr).Msg("debug listener started")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("debug listener stopped")
		}
	}()
}
