// File: internal/dto/update_field_request.go
package dto

// UpdateFieldRequest 單一欄位變更事件；newsletter 的 value 為 "true"/"false"
// swagger:model dto.UpdateFieldRequest
type UpdateFieldRequest struct {
	Name  string `json:"name" form:"name" validate:"required,oneof=username email password role phone newsletter" example:"username"`
	Value string `json:"value" form:"value" example:"alice"`
}
