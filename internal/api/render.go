package api

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const excerptLength = 100

func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"excerpt": excerpt,
	}).ParseFS(templateFS, "templates/*.tmpl"))
}

// excerpt returns the first excerptLength characters of s followed by "...".
func excerpt(s string) string {
	r := []rune(s)
	if len(r) > excerptLength {
		r = r[:excerptLength]
	}
	return string(r) + "..."
}
