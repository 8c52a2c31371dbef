package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jirani-app/app-jirani/internal/navigation"
	"github.com/jirani-app/app-jirani/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAppRouter(variant string) *gin.Engine {
	h := NewAppHandlers(variant)
	router := gin.New()
	router.GET("/v1/app/theme", h.GetTheme)
	router.GET("/v1/app/tabs", h.GetTabs)
	router.GET("/v1/app/menu", h.GetMenu)
	return router
}

func TestGetTheme(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		query   string
		want    theme.Theme
	}{
		{
			name:    "defaults",
			variant: theme.VariantJirani,
			want:    theme.Resolve(theme.VariantJirani, theme.Light, theme.Native),
		},
		{
			name:    "dark web",
			variant: theme.VariantJirani,
			query:   "?scheme=dark&platform=web",
			want:    theme.Resolve(theme.VariantJirani, theme.Dark, theme.Web),
		},
		{
			name:    "biblion",
			variant: theme.VariantBiblion,
			query:   "?scheme=dark",
			want:    theme.Resolve(theme.VariantBiblion, theme.Dark, theme.Native),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(setupAppRouter(tt.variant), http.MethodGet, "/v1/app/theme"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var got theme.Theme
			decode(t, w, &got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetTabs(t *testing.T) {
	w := doJSON(setupAppRouter(theme.VariantBiblion), http.MethodGet, "/v1/app/tabs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tabs []navigation.Tab
	decode(t, w, &tabs)
	require.Len(t, tabs, 3)
	assert.Equal(t, "Read", tabs[0].Title)
	assert.Equal(t, navigation.Profile, tabs[2].Route)
}

func TestGetMenu(t *testing.T) {
	w := doJSON(setupAppRouter(theme.VariantJirani), http.MethodGet, "/v1/app/menu", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var menu []navigation.MenuItem
	decode(t, w, &menu)
	assert.Equal(t, navigation.ProfileMenu(), menu)
	assert.Equal(t, navigation.ActionLogOut, menu[len(menu)-1].Action)
}
