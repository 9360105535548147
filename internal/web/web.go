package web

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/primowater/deliveryform/internal/domain"
	"github.com/primowater/deliveryform/internal/pricing"
)

// OrderPage is the template name of the order form
const OrderPage = "order.html"

// PageData is what the order page template renders
type PageData struct {
	View             domain.FormView
	Form             domain.OrderForm
	WaterOptions     []pricing.CatalogEntry
	DispenserOptions []pricing.CatalogEntry
	Error            string
}

// NewPageData builds page data for a view, with an optional previously posted form
func NewPageData(view domain.FormView, form domain.OrderForm) PageData {
	return PageData{
		View:             view,
		Form:             form,
		WaterOptions:     pricing.WaterOptions(),
		DispenserOptions: pricing.DispenserOptions(),
	}
}

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses the page templates
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"usd": pricing.FormatUSD,
	}).ParseFS(templateFS, "templates/*.html")
}

// Static returns the branding assets and page script rooted at static/
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
