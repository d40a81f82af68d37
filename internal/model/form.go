// File: internal/model/form.go
package model

// Field 表單欄位名稱，與 JSON / form tag 一致
type Field string

const (
	FieldUsername   Field = "username"
	FieldEmail      Field = "email"
	FieldPassword   Field = "password"
	FieldRole       Field = "role"
	FieldPhone      Field = "phone"
	FieldNewsletter Field = "newsletter"
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldUsername, FieldEmail, FieldPassword, FieldPhone, FieldRole, FieldNewsletter}

// ParseField 將字串轉為已知欄位
func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// Role 使用者角色；空字串代表尚未選擇
type Role string

const (
	RoleUnset  Role = ""
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Roles lists the selectable roles.
var Roles = []Role{RoleAdmin, RoleEditor, RoleViewer}

// Valid reports whether r is one of the selectable roles.
func (r Role) Valid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

// FormData 管理員建立使用者表單的欄位值，永遠六個欄位皆有值
type FormData struct {
	Username   string `json:"username" form:"username" validate:"required"`
	Email      string `json:"email" form:"email" validate:"required,email_shape"`
	Password   string `json:"password" form:"password" validate:"required,password_shape"`
	Role       Role   `json:"role" form:"role" validate:"required,role"`
	Phone      string `json:"phone" form:"phone" validate:"required,phone_shape"`
	Newsletter bool   `json:"newsletter" form:"newsletter"`
}

// DefaultFormData returns the empty form.
func DefaultFormData() FormData {
	return FormData{}
}

// With returns a copy of d with exactly one field replaced. Newsletter takes a
// bool, every other field a string; an unknown field or a value of the wrong
// kind returns d unchanged.
func (d FormData) With(field Field, value any) FormData {
	if field == FieldNewsletter {
		if b, ok := value.(bool); ok {
			d.Newsletter = b
		}
		return d
	}
	s, ok := value.(string)
	if !ok {
		return d
	}
	switch field {
	case FieldUsername:
		d.Username = s
	case FieldEmail:
		d.Email = s
	case FieldPassword:
		d.Password = s
	case FieldRole:
		d.Role = Role(s)
	case FieldPhone:
		d.Phone = s
	}
	return d
}

// ErrorMap 欄位 → 驗證失敗訊息，只包含目前未通過的欄位
type ErrorMap map[Field]string

// Valid reports whether no field failed.
func (m ErrorMap) Valid() bool { return len(m) == 0 }

// Clone returns an independent copy; a nil map clones to an empty one.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
