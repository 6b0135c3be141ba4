package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/ramonehamilton/proxygen/internal/decklist"
)

//go:embed assets
var assets embed.FS

var (
	documentTmpl = template.Must(template.ParseFS(assets, "assets/proxies.html.tmpl"))
	errorTmpl    = template.Must(template.ParseFS(assets, "assets/error.html.tmpl"))
)

// FormPage returns the decklist input page.
func FormPage() []byte {
	return mustAsset("assets/proxygen.html")
}

// Stylesheet returns the stylesheet shared by every page.
func Stylesheet() []byte {
	return mustAsset("assets/proxygen.css")
}

func mustAsset(name string) []byte {
	data, err := assets.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("render: missing embedded asset %s: %v", name, err))
	}
	return data
}

type documentData struct {
	Title      string
	Stylesheet template.CSS
	Total      int
	Cards      []template.HTML
}

// Document writes a printable page holding count copies of every entry.
func Document(w io.Writer, entries []decklist.Entry) error {
	data := documentData{
		Title:      "Proxies",
		Stylesheet: template.CSS(Stylesheet()),
	}

	for _, e := range entries {
		card := HTML(e.Entity)
		for i := 0; i < e.Count; i++ {
			data.Cards = append(data.Cards, card)
		}
		data.Total += e.Count
	}

	if err := documentTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	return nil
}

type errorData struct {
	Stylesheet  template.CSS
	Message     string
	Suggestions []string
}

// ErrorPage writes an HTML page explaining why a decklist was rejected.
func ErrorPage(w io.Writer, message string, suggestions []string) error {
	data := errorData{
		Stylesheet:  template.CSS(Stylesheet()),
		Message:     message,
		Suggestions: suggestions,
	}
	if err := errorTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render error page: %w", err)
	}
	return nil
}
