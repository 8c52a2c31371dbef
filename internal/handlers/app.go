package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jirani-app/app-jirani/internal/navigation"
	"github.com/jirani-app/app-jirani/internal/theme"
)

// AppHandlers serves the branding and navigation shell of the configured app variant
type AppHandlers struct {
	variant string
}

// NewAppHandlers creates the app shell handlers for variant
func NewAppHandlers(variant string) *AppHandlers {
	return &AppHandlers{variant: variant}
}

// GetTheme godoc
// @Summary Get the theme
// @Description Returns the palette and branding for a colour scheme and platform.
// @Tags app
// @Produce json
// @Param scheme query string false "Colour scheme" Enums(light, dark)
// @Param platform query string false "Platform" Enums(web, native)
// @Success 200 {object} theme.Theme "Theme"
// @Router /app/theme [get]
func (h *AppHandlers) GetTheme(c *gin.Context) {
	scheme := theme.ParseScheme(c.Query("scheme"))
	platform := theme.ParsePlatform(c.DefaultQuery("platform", string(theme.Native)))
	c.JSON(http.StatusOK, theme.Resolve(h.variant, scheme, platform))
}

// GetTabs godoc
// @Summary Get the tab bar
// @Tags app
// @Produce json
// @Success 200 {array} navigation.Tab "Tabs in display order"
// @Router /app/tabs [get]
func (h *AppHandlers) GetTabs(c *gin.Context) {
	c.JSON(http.StatusOK, navigation.Tabs(h.variant))
}

// GetMenu godoc
// @Summary Get the profile menu
// @Tags app
// @Produce json
// @Success 200 {array} navigation.MenuItem "Menu entries in display order"
// @Router /app/menu [get]
func (h *AppHandlers) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, navigation.ProfileMenu())
}
