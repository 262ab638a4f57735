package server

import (
	"net/http"

	"github.com/hotriluan/vuki-sub000/internal/config"
	"github.com/hotriluan/vuki-sub000/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func New(cfg *config.Config, orderH *handler.OrderHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	orderH.RegisterRoutes(e, cfg.Auth)

	return e
}
