package pipeline

import (
	"embed"
	"fmt"
)

//go:embed templates/*.html
var templateFS embed.FS

// templateHTML returns the raw HTML for the named document template. The
// templates are self-contained pages with a render() function that reads
// window.payload; the surface injects the payload and calls it.
func templateHTML(name string) (string, error) {
	switch name {
	case TemplateReceipt, TemplateKOT:
	default:
		return "", fmt.Errorf("unknown document template %q", name)
	}

	raw, err := templateFS.ReadFile("templates/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("read template %q: %w", name, err)
	}
	return string(raw), nil
}
