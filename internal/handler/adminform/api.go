// File: internal/handler/adminform/api.go
package adminform

import (
	"net/http"
	"strconv"

	"admin-form/internal/dto"
	"admin-form/internal/form"
	"admin-form/internal/model"
	"admin-form/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// GetFormHandler 取得目前表單狀態
// @Summary     Get admin form state
// @Description 回傳欄位值、錯誤訊息與確認視窗狀態
// @Tags        admin-form
// @Produce     json
// @Success     200 {object} dto.FormStateResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /admin/users/form [get]
func GetFormHandler(states session.Store, validate form.ValidateFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		f, _, err := loadForm(c, states, validate, nil)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewFormStateResponse(f.State()))
	}
}

// UpdateFieldHandler 單一欄位變更
// @Summary     Change one form field
// @Description newsletter 的 value 需為布林字串，其餘欄位為文字；不做驗證
// @Tags        admin-form
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       name  formData string true  "欄位名稱"
// @Param       value formData string false "欄位值"
// @Success     200   {object} dto.FormStateResponse
// @Failure     400   {object} dto.HTTPError
// @Failure     500   {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /admin/users/form [patch]
func UpdateFieldHandler(states session.Store, validate form.ValidateFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.UpdateFieldRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}
		field, ok := model.ParseField(req.Name)
		if !ok {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "unknown field"})
		}

		var value any = req.Value
		if field == model.FieldNewsletter {
			checked, err := strconv.ParseBool(req.Value)
			if err != nil {
				return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "newsletter must be true or false"})
			}
			value = checked
		}

		f, key, err := loadForm(c, states, validate, nil)
		if err != nil {
			return respondError(c, err)
		}
		f.Update(field, value)
		if err := saveForm(c, states, key, f); err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewFormStateResponse(f.State()))
	}
}

// SubmitFormHandler 送出表單
// @Summary     Submit the admin form
// @Description 驗證所有欄位；通過時建立使用者、顯示確認視窗並清空表單，否則回傳各欄位錯誤
// @Tags        admin-form
// @Produce     json
// @Success     201 {object} dto.FormStateResponse
// @Failure     409 {object} dto.HTTPError
// @Failure     422 {object} dto.FormStateResponse
// @Failure     500 {object} dto.HTTPError
// @Failure     503 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /admin/users/form/submit [post]
func SubmitFormHandler(states session.Store, validate form.ValidateFunc, sink form.Sink, logger logrus.FieldLogger) echo.HandlerFunc {
	return func(c echo.Context) error {
		f, key, err := loadForm(c, states, validate, sink)
		if err != nil {
			return respondError(c, err)
		}
		res, err := submitForm(c, states, key, f, logger)
		if err != nil {
			return respondError(c, err)
		}
		if res.sinkErr != nil {
			code, body := submitError(res.sinkErr)
			return c.JSON(code, body)
		}
		if !res.errs.Valid() {
			return c.JSON(http.StatusUnprocessableEntity, dto.NewFormStateResponse(f.State()))
		}
		return c.JSON(http.StatusCreated, dto.NewFormStateResponse(f.State()))
	}
}

// DismissPopupHandler 關閉確認視窗
// @Summary     Dismiss the confirmation popup
// @Tags        admin-form
// @Produce     json
// @Success     200 {object} dto.FormStateResponse
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /admin/users/form/popup/dismiss [post]
func DismissPopupHandler(states session.Store, validate form.ValidateFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		f, key, err := loadForm(c, states, validate, nil)
		if err != nil {
			return respondError(c, err)
		}
		f.DismissPopup()
		if err := saveForm(c, states, key, f); err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewFormStateResponse(f.State()))
	}
}
