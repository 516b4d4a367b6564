package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Render.
const (
	CustomerList        = "customer_list.html"
	CustomerNewForm     = "customer_new_form.html"
	CustomerDetail      = "customer_detail.html"
	CustomerEditForm    = "customer_edit_form.html"
	CustomerTopTen      = "customer_topten.html"
	ReservationEditForm = "reservation_edit_form.html"
)

// Engine renders the embedded HTML templates.
type Engine struct {
	templates *template.Template
}

// NewEngine parses all templates once.
func NewEngine() (*Engine, error) {
	tpl, err := template.New("root").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes the named page with the given data.
func (e *Engine) Render(w io.Writer, name string, data any) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	return e.templates.ExecuteTemplate(w, name, data)
}
