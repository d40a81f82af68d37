// File: internal/handler/auth/login.go
package auth

import (
	"fmt"
	"net/http"
	"time"

	"admin-form/internal/database"
	"admin-form/internal/dto"
	"admin-form/internal/middleware"
	"admin-form/internal/service"
	"admin-form/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	getUserByUsername = store.GetUserByUsername
	authenticateAdmin = service.AuthenticateAdmin
	issueAccessToken  = service.IssueAccessToken
	timeNow           = time.Now
)

// LoginHandler 管理員以 Username/Password 登入並取得 JWT
// 同時寫入 access_token cookie 供表單頁面使用
// @Summary     登入管理員
// @Description 使用 Username 與 Password 進行驗證，僅 admin 角色可登入，回傳存取令牌與到期時間
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       username formData string true "使用者名稱"
// @Param       password formData string true "使用者密碼"
// @Success     200      {object} dto.LoginResponse
// @Failure     400      {object} dto.HTTPError
// @Failure     401      {object} dto.HTTPError
// @Failure     500      {object} dto.HTTPError
// @Router      /auth/login [post]
func LoginHandler(db database.DB, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		// 先 Bind
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: fmt.Sprintf("無效的表單資料: %v", err)})
		}
		// 再驗證結構化參數 (go-playground/validator)
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		// 撈使用者資料
		user, err := getUserByUsername(c.Request().Context(), db, req.Username)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "invalid credentials"})
		}

		// 驗證密碼與角色
		authUser, err := authenticateAdmin(*user, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "invalid credentials"})
		}

		// 發行存取令牌
		token, err := issueAccessToken(*authUser, ttl)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: fmt.Sprintf("failed to issue token: %v", err)})
		}
		expiresAt := timeNow().Add(ttl)

		c.SetCookie(&http.Cookie{
			Name:     middleware.TokenCookie,
			Value:    token,
			Path:     "/",
			Expires:  expiresAt,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
		return c.JSON(http.StatusOK, dto.LoginResponse{AccessToken: token, TokenType: "Bearer", ExpiresAt: expiresAt})
	}
}
