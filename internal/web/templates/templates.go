// Package templates holds the HTML views. Pages are html/template files
// exposed as templ components so handlers render them like any other
// component.
package templates

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"
)

//go:embed *.html
var files embed.FS

var pages = map[string]*template.Template{
	"calculator": parsePage("calculator.html"),
	"report":     parsePage("report.html"),
}

func parsePage(name string) *template.Template {
	return template.Must(template.New("layout.html").Funcs(funcs).ParseFS(files, "layout.html", name))
}

// Calculator renders the input form, results and charts.
func Calculator(data CalculatorPage) templ.Component {
	return templ.FromGoHTML(pages["calculator"], data)
}

// Report renders a Markdown report converted to HTML.
func Report(data ReportPage) templ.Component {
	return templ.FromGoHTML(pages["report"], data)
}
