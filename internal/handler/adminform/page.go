// File: internal/handler/adminform/page.go
package adminform

import (
	"net/http"

	"admin-form/internal/dto"
	"admin-form/internal/form"
	"admin-form/internal/model"
	"admin-form/internal/session"
	"admin-form/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func renderPage(c echo.Context, code int, f *form.Form) error {
	return c.Render(code, view.AdminFormTemplate, view.NewAdminFormPage(f.State(), PagePath, DismissPagePath))
}

// PageHandler 顯示表單頁面
func PageHandler(states session.Store, validate form.ValidateFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		f, _, err := loadForm(c, states, validate, nil)
		if err != nil {
			return err
		}
		return renderPage(c, http.StatusOK, f)
	}
}

// SubmitPageHandler 瀏覽器送出整張表單：逐欄套用變更後送出
// 成功時 303 回到頁面顯示確認視窗；驗證失敗時直接以 422 重新渲染。
// 成功但狀態未能保存時直接渲染結果，避免重新導向後看到舊資料
func SubmitPageHandler(states session.Store, validate form.ValidateFunc, sink form.Sink, logger logrus.FieldLogger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.SubmitFormRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
		}
		f, key, err := loadForm(c, states, validate, sink)
		if err != nil {
			return err
		}
		f.Update(model.FieldUsername, req.Username)
		f.Update(model.FieldEmail, req.Email)
		f.Update(model.FieldPassword, req.Password)
		f.Update(model.FieldPhone, req.Phone)
		f.Update(model.FieldRole, req.Role)
		f.Update(model.FieldNewsletter, req.Newsletter != "")

		res, err := submitForm(c, states, key, f, logger)
		if err != nil {
			return err
		}
		if res.sinkErr != nil {
			code, body := submitError(res.sinkErr)
			return echo.NewHTTPError(code, body.Message)
		}
		if !res.errs.Valid() {
			return renderPage(c, http.StatusUnprocessableEntity, f)
		}
		if !res.persisted {
			return renderPage(c, http.StatusOK, f)
		}
		return c.Redirect(http.StatusSeeOther, PagePath)
	}
}

// DismissPageHandler 關閉確認視窗後回到頁面
func DismissPageHandler(states session.Store, validate form.ValidateFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		f, key, err := loadForm(c, states, validate, nil)
		if err != nil {
			return err
		}
		f.DismissPopup()
		if err := saveForm(c, states, key, f); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, PagePath)
	}
}
