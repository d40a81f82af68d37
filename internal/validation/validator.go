// Package validation wraps go-playground/validator with the admin form rules.
// The same *Validator serves as echo's request validator.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"admin-form/internal/model"

	"github.com/go-playground/validator/v10"
)

const (
	MsgUsernameRequired = "Username is required"
	MsgInvalidEmail     = "Invalid email address"
	MsgInvalidPassword  = "Password must be at least 8 characters long and include an uppercase letter, a lowercase letter, and a number"
	MsgInvalidPhone     = "Phone number must be 10 digits long"
	MsgRoleRequired     = "Please select a role"
)

// messages 每個欄位固定一則錯誤訊息，不論是哪個規則失敗
var messages = map[model.Field]string{
	model.FieldUsername: MsgUsernameRequired,
	model.FieldEmail:    MsgInvalidEmail,
	model.FieldPassword: MsgInvalidPassword,
	model.FieldPhone:    MsgInvalidPhone,
	model.FieldRole:     MsgRoleRequired,
}

// whitespace here follows the browser's \s, which also covers \v, NBSP,
// the Unicode space separators and BOM.
const notSpaceOrAt = `[^\s\v\p{Z}\x{FEFF}@]`

var (
	emailPattern    = regexp.MustCompile(`^` + notSpaceOrAt + `+@` + notSpaceOrAt + `+\.` + notSpaceOrAt + `+$`)
	phonePattern    = regexp.MustCompile(`^[0-9]{10}$`)
	passwordLength  = regexp.MustCompile(`^[^\n\r\x{2028}\x{2029}]{8,}$`)
	hasLower        = regexp.MustCompile(`[a-z]`)
	hasUpper        = regexp.MustCompile(`[A-Z]`)
	hasDigit        = regexp.MustCompile(`[0-9]`)
	errNotFormShape = errors.New("validation: unexpected validator error")
)

// Validator 封裝 go-playground/validator，註冊表單自訂規則
type Validator struct {
	validate *validator.Validate
}

// New builds a validator with the form rules registered.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	rules := map[string]validator.Func{
		"email_shape":    func(fl validator.FieldLevel) bool { return IsEmail(fl.Field().String()) },
		"password_shape": func(fl validator.FieldLevel) bool { return IsPassword(fl.Field().String()) },
		"phone_shape":    func(fl validator.FieldLevel) bool { return IsPhone(fl.Field().String()) },
		"role":           func(fl validator.FieldLevel) bool { return model.Role(fl.Field().String()).Valid() },
	}
	for tag, fn := range rules {
		// 只有 tag 重複或空字串才會失敗，皆為程式錯誤
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return &Validator{validate: v}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// ValidateForm checks every field of d and returns the failing ones. The result
// depends only on d.
func (v *Validator) ValidateForm(d model.FormData) model.ErrorMap {
	out := model.ErrorMap{}
	err := v.validate.Struct(d)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		panic(errors.Join(errNotFormShape, err))
	}
	for _, fe := range verrs {
		f := model.Field(fe.Field())
		if msg, ok := messages[f]; ok {
			out[f] = msg
		}
	}
	return out
}

// IsEmail reports whether s looks like local@domain.tld.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsPhone reports whether s is exactly ten ASCII digits.
func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// IsPassword reports whether s has at least 8 characters on one line with a
// lowercase letter, an uppercase letter and a digit.
func IsPassword(s string) bool {
	return passwordLength.MatchString(s) &&
		hasLower.MatchString(s) &&
		hasUpper.MatchString(s) &&
		hasDigit.MatchString(s)
}
