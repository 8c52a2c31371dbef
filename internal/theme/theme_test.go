package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	tests := []struct {
		name     string
		scheme   Scheme
		platform Platform
		want     Palette
	}{
		{"native light", Light, Native, lightPalette},
		{"native dark", Dark, Native, darkPalette},
		{"web light", Light, Web, webPalette},
		{"web dark", Dark, Web, webPalette},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, For(tt.scheme, tt.platform))
		})
	}
}

func TestFor_ExactColours(t *testing.T) {
	dark := For(Dark, Native)
	assert.Equal(t, "#0B0B0B", dark.Bg)
	assert.Equal(t, "#FFFFFF", dark.Text)
	assert.Equal(t, "#111111", dark.Card)

	light := For(Light, Native)
	assert.Equal(t, "#6B7280", light.Sub)
	assert.Equal(t, "#E5E7EB", light.Line)

	assert.Equal(t, "var(--app-soft)", For(Light, Web).Soft)
}

func TestParse(t *testing.T) {
	assert.Equal(t, Dark, ParseScheme("DARK"))
	assert.Equal(t, Light, ParseScheme(""))
	assert.Equal(t, Light, ParseScheme("no-preference"))

	assert.Equal(t, Web, ParsePlatform("web"))
	assert.Equal(t, Native, ParsePlatform("ios"))
	assert.Equal(t, Native, ParsePlatform("android"))
}

func TestVariant(t *testing.T) {
	jirani := VariantFor(VariantJirani)
	assert.Equal(t, "Jirani", jirani.Name)
	assert.Equal(t, "Welcome to Jirani", jirani.Welcome())
	assert.Equal(t, "assets/icons/splash-icon-light.png", jirani.Logo(Dark))
	assert.Equal(t, "assets/icons/splash-icon-dark.png", jirani.Logo(Light))

	assert.Equal(t, "Biblion", VariantFor(VariantBiblion).Name)
	assert.Equal(t, jirani, VariantFor("unknown"))
}

func TestResolve(t *testing.T) {
	th := Resolve(VariantBiblion, Dark, Native)

	assert.Equal(t, darkPalette, th.Palette)
	assert.Equal(t, "#FCA5A5", th.Warning)
	assert.Equal(t, "#0B0B0B", th.OnText)
	assert.Equal(t, "assets/icons/biblion-icon-light.png", th.Logo)
	assert.Equal(t, "Biblion", th.Variant.Name)
}
