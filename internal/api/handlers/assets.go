package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	texttemplate "text/template"

	"github.com/5w1tchy/password-meter/internal/security/password"
)

//go:embed templates
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// stylesheet is rendered once from the level table so bar colours have a single source.
var stylesheet = renderStylesheet()

func renderStylesheet() []byte {
	tmpl := texttemplate.Must(texttemplate.New("style.css.tmpl").
		Funcs(texttemplate.FuncMap{
			"percent": func(score int) int { return score * 100 / password.MaxScore },
		}).
		ParseFS(templateFS, "templates/style.css.tmpl"))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{"Levels": password.Levels()}); err != nil {
		panic(fmt.Sprintf("render stylesheet: %v", err))
	}
	return buf.Bytes()
}

func Stylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(stylesheet)
}
