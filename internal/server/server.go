package server

import (
	"app/internal/config"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RegisterRoutesを持つhandlerをまとめて登録する
type Routable interface {
	RegisterRoutes(e *echo.Echo)
}

func Start(cfg config.Config, handlers ...Routable) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	//フロントからのブラウザアクセスのみ許可
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.FEURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PATCH, echo.DELETE},
	}))

	for _, h := range handlers {
		h.RegisterRoutes(e)
	}

	addr := cfg.Port
	if addr == "" {
		addr = "8080"
	}
	if addr[0] != ':' {
		addr = ":" + addr
	}

	return e.Start(addr)
}
