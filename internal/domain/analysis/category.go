package analysis

import "github.com/BruksfildServices01/personal-color/internal/models"

// ===============================
// Color type catalogue
// ===============================

type Palette struct {
	Type        models.ColorType `json:"type"`
	DisplayName string           `json:"display_name"`
	Description string           `json:"description"`
	Swatches    []string         `json:"swatches"`
}

var catalogue = []Palette{
	{
		Type:        models.ColorTypeSpringWarm,
		DisplayName: "Spring Warm",
		Description: "Warm, bright and lively colors suit you best.",
		Swatches:    []string{"#FFB6C1", "#FFA07A", "#F0E68C", "#98FB98"},
	},
	{
		Type:        models.ColorTypeSummerCool,
		DisplayName: "Summer Cool",
		Description: "Cool, soft and elegant colors suit you best.",
		Swatches:    []string{"#E6E6FA", "#B0C4DE", "#F0F8FF", "#DDA0DD"},
	},
	{
		Type:        models.ColorTypeAutumnWarm,
		DisplayName: "Autumn Warm",
		Description: "Deep, rich and warm colors suit you best.",
		Swatches:    []string{"#D2691E", "#CD853F", "#B22222", "#8B4513"},
	},
	{
		Type:        models.ColorTypeWinterCool,
		DisplayName: "Winter Cool",
		Description: "Vivid, clear and cool colors suit you best.",
		Swatches:    []string{"#000080", "#800080", "#DC143C", "#008B8B"},
	},
}

var fallbackSwatches = []string{"#808080"}

// ColorTypes returns every category in catalogue order.
func ColorTypes() []models.ColorType {
	out := make([]models.ColorType, 0, len(catalogue))
	for _, p := range catalogue {
		out = append(out, p.Type)
	}
	return out
}

func PaletteFor(t models.ColorType) (Palette, bool) {
	for _, p := range catalogue {
		if p.Type == t {
			p.Swatches = append([]string(nil), p.Swatches...)
			return p, true
		}
	}
	return Palette{
		Type:        t,
		DisplayName: string(t),
		Swatches:    append([]string(nil), fallbackSwatches...),
	}, false
}

func DisplayName(t models.ColorType) string {
	p, _ := PaletteFor(t)
	return p.DisplayName
}
