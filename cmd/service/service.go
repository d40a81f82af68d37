// File: cmd/service/service.go
package main

import (
	"context"
	"fmt"

	"admin-form/internal/cache"
	"admin-form/internal/config"
	"admin-form/internal/database"
	"admin-form/internal/form"
	"admin-form/internal/logging"
	"admin-form/internal/router"
	"admin-form/internal/service"
	"admin-form/internal/validation"
	"admin-form/internal/view"
	"admin-form/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn      = database.RollbackAll
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
)

func run(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	wp := newWorkerPool(cfg.WorkerCount, logger)
	defer wp.Stop()

	renderer, err := view.NewRenderer()
	if err != nil {
		return fmt.Errorf("載入頁面模板失敗: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()
	e.Renderer = renderer
	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())

	router.Setup(e, db, rdb, newSink(db, wp, logger), router.Options{
		FormTTL:  cfg.FormTTL,
		TokenTTL: cfg.TokenTTL,
		Logger:   logger,
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	logger.WithField("addr", cfg.HTTPAddr).Info("starting server")
	return startServer(e, cfg.HTTPAddr)
}

// newSink 先經斷路器建立使用者，成功後才寫診斷日誌
func newSink(db database.DB, wp worker.Pool, logger logrus.FieldLogger) form.Sink {
	return service.Sinks{
		service.NewBreakerSink("users", &service.UserSink{DB: db, Workers: wp, Logger: logger}),
		&service.LogSink{Logger: logger},
	}
}

func migrateUp(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}
	return nil
}

func migrateDown(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if err := rollbackFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("RollbackAll 失敗: %v", err)
	}
	return nil
}
