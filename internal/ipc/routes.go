package ipc

import (
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, c Controller, socket string) {
	e.GET("/status", statusHandler(c, socket))
	e.POST("/stop", stopHandler(c))
	e.POST("/next", nextHandler(c))
}
