// serve.go starts the HTTP API used by the web workflow: upload an
// eligibility file, get back CSV, Excel, or JSON.

package main

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/roadmaphealthcare/ediot/internal/api"
)

// cmdServe runs the HTTP server on the given port until it fails or the
// process is stopped.
func cmdServe(port string) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	api.NewHandler(version).RegisterRoutes(e)

	slog.Info("starting server", "port", port, "version", version)
	if err := e.Start(":" + port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
