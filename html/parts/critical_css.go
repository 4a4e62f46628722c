package parts

import (
	_ "embed"
	"html/template"
)

//go:embed critical.css
var criticalCSS string

// CriticalCSS is inlined in every page head.
func CriticalCSS() template.CSS {
	return template.CSS(criticalCSS)
}
