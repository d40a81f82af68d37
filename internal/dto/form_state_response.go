// File: internal/dto/form_state_response.go
package dto

import (
	"admin-form/internal/form"
	"admin-form/internal/model"
)

// swagger:model dto.PopupResponse
type PopupResponse struct {
	Visible bool   `json:"visible" example:"true"`
	Title   string `json:"title,omitempty" example:"Form Submitted"`
	Message string `json:"message,omitempty" example:"Your form has been successfully submitted."`
}

// FormStateResponse 表單目前的欄位值、錯誤訊息與確認視窗
// swagger:model dto.FormStateResponse
type FormStateResponse struct {
	Data   model.FormData `json:"data"`
	Errors model.ErrorMap `json:"errors"`
	Popup  PopupResponse  `json:"popup"`
}

func NewFormStateResponse(st form.State) FormStateResponse {
	resp := FormStateResponse{
		Data:   st.Data,
		Errors: st.Errors.Clone(),
		Popup:  PopupResponse{Visible: st.Popup.Visible()},
	}
	if resp.Popup.Visible {
		resp.Popup.Title = form.PopupTitle
		resp.Popup.Message = form.PopupMessage
	}
	return resp
}
