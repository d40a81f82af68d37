// File: internal/router/router.go
package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"admin-form/internal/cache"
	"admin-form/internal/database"
	"admin-form/internal/form"
	"admin-form/internal/handler"
	"admin-form/internal/handler/adminform"
	"admin-form/internal/handler/auth"
	"admin-form/internal/middleware"
	"admin-form/internal/session"
	"admin-form/internal/validation"
)

// Options 路由需要的時效設定與日誌；Logger 為 nil 時使用 logrus 預設 logger
type Options struct {
	FormTTL  time.Duration
	TokenTTL time.Duration
	Logger   logrus.FieldLogger
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, sink form.Sink, opts Options) {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	states := session.NewRedisStore(rdb, opts.FormTTL)
	validate := validation.New().ValidateForm

	api := e.Group("/api")

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db, rdb, logger), middleware.RequireAuth)

	// 管理員登入與登出
	api.POST("/auth/login", auth.LoginHandler(db, opts.TokenTTL))
	api.POST("/auth/logout", auth.LogoutHandler(states), middleware.RequireAuth)

	// 管理員建立使用者表單 (JSON)
	apiForm := api.Group("/admin/users/form", middleware.RequireAdmin)
	apiForm.GET("", adminform.GetFormHandler(states, validate))
	apiForm.PATCH("", adminform.UpdateFieldHandler(states, validate))
	apiForm.POST("/submit", adminform.SubmitFormHandler(states, validate, sink, logger))
	apiForm.POST("/popup/dismiss", adminform.DismissPopupHandler(states, validate))

	// 管理員建立使用者表單 (HTML)
	e.GET(adminform.PagePath, adminform.PageHandler(states, validate), middleware.RequireAdmin)
	e.POST(adminform.PagePath, adminform.SubmitPageHandler(states, validate, sink, logger), middleware.RequireAdmin)
	e.POST(adminform.DismissPagePath, adminform.DismissPageHandler(states, validate), middleware.RequireAdmin)
}
