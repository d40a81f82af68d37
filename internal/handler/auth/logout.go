// File: internal/handler/auth/logout.go
package auth

import (
	"context"
	"net/http"
	"time"

	"admin-form/internal/dto"
	"admin-form/internal/middleware"
	"admin-form/internal/session"

	"github.com/labstack/echo/v4"
)

// SessionClearer 清除使用者暫存的表單狀態
type SessionClearer interface {
	Clear(ctx context.Context, key string) error
}

// LogoutHandler 清除表單暫存並使 access_token cookie 失效
// @Summary     登出
// @Description 丟棄目前管理員尚未送出的表單狀態並清除 cookie
// @Tags        auth
// @Success     204
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /auth/logout [post]
func LogoutHandler(states SessionClearer) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.Claims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "missing claims"})
		}
		if err := states.Clear(c.Request().Context(), session.Key(claims.UserID)); err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "failed to clear form session"})
		}

		c.SetCookie(&http.Cookie{
			Name:     middleware.TokenCookie,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
		return c.NoContent(http.StatusNoContent)
	}
}
