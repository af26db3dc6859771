package parts

import (
	_ "embed"
	"html/template"
)

//go:embed critical.css
var criticalCSS string

// GetCriticalCSS returns the inlined above-the-fold stylesheet.
func GetCriticalCSS() template.CSS {
	return template.CSS(criticalCSS)
}
