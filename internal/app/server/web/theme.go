package web

import (
	"fmt"
	"html/template"
	"strings"
)

// Theme is the shared palette applied to every page.
type Theme struct {
	Primary    string
	Secondary  string
	Success    string
	Error      string
	FontFamily string
}

func DefaultTheme() Theme {
	return Theme{
		Primary:    "#2e7d32",
		Secondary:  "#6d4c41",
		Success:    "#388e3c",
		Error:      "#d32f2f",
		FontFamily: "Alef, Arial, sans-serif",
	}
}

// CSS renders the palette as custom properties on :root.
func (t Theme) CSS() template.CSS {
	var b strings.Builder
	b.WriteString(":root{")
	fmt.Fprintf(&b, "--color-primary:%s;", t.Primary)
	fmt.Fprintf(&b, "--color-secondary:%s;", t.Secondary)
	fmt.Fprintf(&b, "--color-success:%s;", t.Success)
	fmt.Fprintf(&b, "--color-error:%s;", t.Error)
	fmt.Fprintf(&b, "--font-family:%s;", t.FontFamily)
	b.WriteString("}")

	return template.CSS(b.String())
}
