// File: internal/handler/adminform/state.go
package adminform

import (
	"errors"
	"net/http"

	"admin-form/internal/dto"
	"admin-form/internal/form"
	"admin-form/internal/middleware"
	"admin-form/internal/model"
	"admin-form/internal/service"
	"admin-form/internal/session"
	"admin-form/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	// PagePath 瀏覽器表單頁面
	PagePath = "/admin/users/form"
	// DismissPagePath 頁面上確認視窗的關閉按鈕
	DismissPagePath = PagePath + "/popup/dismiss"
)

// sessionKey 每位管理員各自一份表單
func sessionKey(c echo.Context) (string, error) {
	claims, ok := middleware.Claims(c)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	return session.Key(claims.UserID), nil
}

// loadForm 讀取目前 session 的表單狀態
func loadForm(c echo.Context, states session.Store, validate form.ValidateFunc, sink form.Sink) (*form.Form, string, error) {
	key, err := sessionKey(c)
	if err != nil {
		return nil, "", err
	}
	st, err := states.Load(c.Request().Context(), key)
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusInternalServerError, "failed to load form state")
	}
	return form.Restore(st, validate, sink), key, nil
}

func saveForm(c echo.Context, states session.Store, key string, f *form.Form) error {
	if err := states.Save(c.Request().Context(), key, f.State()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save form state").SetInternal(err)
	}
	return nil
}

// submitResult 送出事件的結果
type submitResult struct {
	errs      model.ErrorMap
	sinkErr   error
	persisted bool
}

// accepted 資料已交給 sink 且被接受
func (r submitResult) accepted() bool {
	return r.sinkErr == nil && r.errs.Valid()
}

// submitForm 執行送出後保存狀態。sink 已接受後保存失敗只記錄不回錯，
// 否則重試會把同一筆資料再送一次
func submitForm(c echo.Context, states session.Store, key string, f *form.Form, logger logrus.FieldLogger) (submitResult, error) {
	var res submitResult
	res.errs, res.sinkErr = f.Submit(c.Request().Context())
	if err := saveForm(c, states, key, f); err != nil {
		if !res.accepted() {
			return res, err
		}
		logger.WithError(err).WithField("session", key).Error("form submitted but state not saved")
		return res, nil
	}
	res.persisted = true
	return res, nil
}

// submitError 將 sink 錯誤轉為 HTTP 狀態碼
func submitError(err error) (int, dto.HTTPError) {
	switch {
	case errors.Is(err, store.ErrDuplicateUser):
		return http.StatusConflict, dto.HTTPError{Message: store.ErrDuplicateUser.Error()}
	case errors.Is(err, service.ErrSinkUnavailable):
		return http.StatusServiceUnavailable, dto.HTTPError{Message: "user service temporarily unavailable"}
	default:
		return http.StatusInternalServerError, dto.HTTPError{Message: "failed to submit form"}
	}
}

// respondError 將 echo.HTTPError 轉為 dto.HTTPError JSON
func respondError(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, _ := he.Message.(string)
		return c.JSON(he.Code, dto.HTTPError{Message: msg})
	}
	return err
}
