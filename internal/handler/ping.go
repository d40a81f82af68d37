// File: internal/handler/ping.go
package handler

import (
	"context"
	"net/http"
	"time"

	"admin-form/internal/cache"
	"admin-form/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	// pingKey 健康檢查寫入 Redis 的鍵
	pingKey     = "adminform:ping"
	pingTimeout = 2 * time.Second

	statusUp   = "up"
	statusDown = "down"
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 整體狀態：pong 或 degraded
	Message  string `json:"message" example:"pong"`
	Database string `json:"database" example:"up"`
	Cache    string `json:"cache" example:"up"`
}

func check(err error) string {
	if err != nil {
		return statusDown
	}
	return statusUp
}

// PingHandler 健康檢查（需通過認證）
// @Summary     Health Check
// @Description 檢查資料庫與 Redis 連線；任一失敗時回傳 503 與各元件狀態
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     503 {object} PingResponse
// @Security    ApiKeyAuth
// @Router      /ping [get]
func PingHandler(db database.DB, rdb cache.Cache, logger logrus.FieldLogger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
		defer cancel()

		resp := PingResponse{
			Database: check(db.Ping(ctx)),
			Cache:    check(rdb.Set(ctx, pingKey, time.Now().UTC().Format(time.RFC3339), time.Minute).Err()),
		}
		if resp.Database == statusDown || resp.Cache == statusDown {
			resp.Message = "degraded"
			logger.WithFields(logrus.Fields{"database": resp.Database, "cache": resp.Cache}).Warn("health check degraded")
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
		resp.Message = "pong"
		return c.JSON(http.StatusOK, resp)
	}
}
