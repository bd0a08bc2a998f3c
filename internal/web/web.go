package web

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	domain "github.com/BruksfildServices01/personal-color/internal/domain/analysis"
	"github.com/BruksfildServices01/personal-color/internal/models"
	"github.com/BruksfildServices01/personal-color/internal/timezone"
)

//go:embed templates/*.html
var templateFS embed.FS

const timeLayout = "2006-01-02 15:04"

// Templates parses the embedded pages. Times are rendered in tz.
func Templates(tz string) (*template.Template, error) {
	funcs := template.FuncMap{
		"formatTime": func(t time.Time) string {
			return timezone.Format(t, tz, timeLayout)
		},
		"percent": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v*100)
		},
		"displayName": func(t models.ColorType) string {
			return domain.DisplayName(t)
		},
		"add": func(a, b int) int {
			return a + b
		},
		"safeColor": func(hex string) template.CSS {
			if !isHexColor(hex) {
				return template.CSS("#808080")
			}
			return template.CSS(hex)
		},
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !('0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F') {
			return false
		}
	}
	return true
}
