package api

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// uploadPage carries everything the single-page UI can show: the form is
// always present, the rest appears after a successful run.
type uploadPage struct {
	Error       string
	Mapping     string
	ReportHTML  template.HTML
	PreviewURL  string
	DownloadURL string
}
