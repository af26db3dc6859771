//go:build !cli
// +build !cli

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"shopzone.GO/api"
	_ "shopzone.GO/api/cartitems"
	_ "shopzone.GO/api/catalog"
	_ "shopzone.GO/api/component"
	_ "shopzone.GO/api/dashboard"
	_ "shopzone.GO/api/graphql"
	_ "shopzone.GO/api/health"
	_ "shopzone.GO/api/order"
	_ "shopzone.GO/api/product"
	_ "shopzone.GO/api/storefront"
	"shopzone.GO/config"
	"shopzone.GO/core/app"
	"shopzone.GO/core/auth"
	"shopzone.GO/cron"
	_ "shopzone.GO/custom"
	_ "shopzone.GO/html"
)

func main() {
	config.LoadEnv()
	cfg := config.App()
	log := config.Logger()
	defer log.Sync()

	a, err := app.Build(context.Background())
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer a.Close()
	log.Info("database connection successful", zap.String("driver", config.DBDriver()))

	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Debug
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
			return err
		}
	})

	api.Apply(e, a.Deps, auth.Middleware())

	if cfg.CronInProcess {
		c, err := cron.StartCron(cron.Deps{
			DB:            a.Deps.DB,
			Sessions:      a.Deps.Sessions,
			RetentionDays: cfg.CartRetentionDays,
			Log:           log,
		})
		if err != nil {
			log.Fatal("cron", zap.Error(err))
		}
		defer c.Stop()
	}

	go func() {
		log.Info("server running", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
