package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/personal-color/internal/domain/analysis"
)

// WebHandler serves the static pages.
type WebHandler struct{}

func NewWebHandler() *WebHandler {
	return &WebHandler{}
}

func (h *WebHandler) Home(c *gin.Context) {
	render(c, http.StatusOK, "home", nil)
}

func (h *WebHandler) Shop(c *gin.Context) {
	palettes := make([]domain.Palette, 0, 4)
	for _, ct := range domain.ColorTypes() {
		p, _ := domain.PaletteFor(ct)
		palettes = append(palettes, p)
	}
	render(c, http.StatusOK, "shop", gin.H{
		"Title":    "Shop",
		"Palettes": palettes,
	})
}

func (h *WebHandler) Menu(c *gin.Context) {
	c.Redirect(http.StatusFound, "/shop")
}
