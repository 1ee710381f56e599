package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/clientes/internal/model"
)

const (
	templateIndex        = "index"
	templateListing      = "listado"
	templateInsert       = "insertar"
	templateUpdateDelete = "actualizar_eliminar"
	templateErrorMini    = "error_mini"
)

//go:embed templates/*.html
var templatesFS embed.FS

type customerRow struct {
	ID   string
	Name string
	Age  string
	City string
}

type listingView struct {
	Filter    string
	Customers []customerRow
}

type errorView struct {
	Message string
	Detail  string
}

type indexPage struct {
	Listing listingView
	Failure errorView
}

// TemplateRenderer implements echo.Renderer over embedded html templates
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses embedded templates
func NewTemplateRenderer() (*TemplateRenderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates - %w", err)
	}
	return &TemplateRenderer{templates: t}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func rows(customers []*model.Customer) []customerRow {
	rr := make([]customerRow, 0, len(customers))
	for _, c := range customers {
		var r customerRow
		r.Name = c.Name
		if c.ID != nil {
			r.ID = *c.ID
		}
		if c.Age != nil {
			r.Age = strconv.Itoa(*c.Age)
		}
		if c.City != nil {
			r.City = *c.City
		}
		rr = append(rr, r)
	}
	return rr
}
