// File: internal/dto/submit_form_request.go
package dto

// SubmitFormRequest 瀏覽器一次送出整張表單；checkbox 勾選時帶任意非空值
type SubmitFormRequest struct {
	Username   string `form:"username"`
	Email      string `form:"email"`
	Password   string `form:"password"`
	Role       string `form:"role"`
	Phone      string `form:"phone"`
	Newsletter string `form:"newsletter"`
}
