package ipc

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/matjam/photoframe"
	"github.com/matjam/photoframe/internal/display"
	"github.com/spf13/viper"
)

// GET /status
func statusHandler(c Controller, socket string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		return ctx.JSONPretty(http.StatusOK, StatusResponse{
			Status:  "ok",
			Message: "photoframe is running",
			Version: strings.Trim(photoframe.Version, "\n\r "),
			PID:     os.Getpid(),
			Socket:  socket,
			Config:  viper.ConfigFileUsed(),
			Display: c.Status(),
		}, "  ")
	}
}

// POST /stop
func stopHandler(c Controller) echo.HandlerFunc {
	return commandHandler(c, display.CommandStop)
}

// POST /next
func nextHandler(c Controller) echo.HandlerFunc {
	return commandHandler(c, display.CommandNext)
}

func commandHandler(c Controller, t display.CommandType) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		err := c.EnqueueCommand(display.Command{Type: t})
		if errors.Is(err, display.ErrCommandQueueFull) {
			return ctx.JSON(http.StatusServiceUnavailable, Response{Status: "busy", Message: err.Error()})
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return ctx.JSON(http.StatusOK, Response{Status: "ok"})
	}
}
