// Package theme resolves the colour palette and branding of the app.
package theme

import "strings"

// Scheme is the system colour scheme.
type Scheme string

const (
	Light Scheme = "light"
	Dark  Scheme = "dark"
)

// ParseScheme defaults to Light for anything but "dark".
func ParseScheme(s string) Scheme {
	if strings.EqualFold(strings.TrimSpace(s), string(Dark)) {
		return Dark
	}
	return Light
}

// Platform is where the app renders.
type Platform string

const (
	Web    Platform = "web"
	Native Platform = "native"
)

// ParsePlatform maps ios and android to Native.
func ParsePlatform(s string) Platform {
	if strings.EqualFold(strings.TrimSpace(s), string(Web)) {
		return Web
	}
	return Native
}

// Palette holds the colours every screen uses. On the web they are CSS
// variable references resolved by the global stylesheet.
type Palette struct {
	Bg   string `json:"bg"`
	Text string `json:"text"`
	Sub  string `json:"sub"`
	Line string `json:"line"`
	Soft string `json:"soft"`
	Card string `json:"card"`
}

var (
	webPalette = Palette{
		Bg:   "var(--app-bg)",
		Text: "var(--app-text)",
		Sub:  "var(--app-sub)",
		Line: "var(--app-line)",
		Soft: "var(--app-soft)",
		Card: "var(--app-card)",
	}
	lightPalette = Palette{
		Bg:   "#FFFFFF",
		Text: "#0B0B0B",
		Sub:  "#6B7280",
		Line: "#E5E7EB",
		Soft: "#F3F4F6",
		Card: "#FFFFFF",
	}
	darkPalette = Palette{
		Bg:   "#0B0B0B",
		Text: "#FFFFFF",
		Sub:  "#9CA3AF",
		Line: "#2A2A2A",
		Soft: "#151515",
		Card: "#111111",
	}
)

// For returns the palette for a scheme on a platform. The web palette does
// not depend on the scheme.
func For(scheme Scheme, platform Platform) Palette {
	if platform == Web {
		return webPalette
	}
	if scheme == Dark {
		return darkPalette
	}
	return lightPalette
}

// Warning is the colour of the "Missing" indicator.
func Warning(scheme Scheme) string {
	if scheme == Dark {
		return "#FCA5A5"
	}
	return "#DC2626"
}

// OnText is the foreground used on top of a Text-coloured button.
func OnText(scheme Scheme) string {
	if scheme == Dark {
		return "#0B0B0B"
	}
	return "#FFFFFF"
}
