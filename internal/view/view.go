// Package view renders the admin form page with html/template behind echo's
// Renderer interface.
package view

import (
	"embed"
	"html/template"
	"io"

	"admin-form/internal/form"
	"admin-form/internal/model"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

// AdminFormTemplate is the name of the form page template.
const AdminFormTemplate = "admin_form.html"

var roleLabels = map[model.Role]string{
	model.RoleAdmin:  "Admin",
	model.RoleEditor: "Editor",
	model.RoleViewer: "Viewer",
}

// Renderer implements echo.Renderer.
type Renderer struct {
	tpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tpl: tpl}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tpl.ExecuteTemplate(w, name, data)
}

type RoleOption struct {
	Value    string
	Label    string
	Selected bool
}

// AdminFormPage 頁面資料；Errors 以字串為鍵方便在模板中 index
type AdminFormPage struct {
	Data          model.FormData
	Errors        map[string]string
	Roles         []RoleOption
	ShowPopup     bool
	PopupTitle    string
	PopupMessage  string
	Action        string
	DismissAction string
}

func NewAdminFormPage(st form.State, action, dismissAction string) AdminFormPage {
	p := AdminFormPage{
		Data:          st.Data,
		Errors:        make(map[string]string, len(st.Errors)),
		ShowPopup:     st.Popup.Visible(),
		PopupTitle:    form.PopupTitle,
		PopupMessage:  form.PopupMessage,
		Action:        action,
		DismissAction: dismissAction,
	}
	for f, msg := range st.Errors {
		p.Errors[string(f)] = msg
	}
	for _, r := range model.Roles {
		p.Roles = append(p.Roles, RoleOption{Value: string(r), Label: roleLabels[r], Selected: st.Data.Role == r})
	}
	return p
}
