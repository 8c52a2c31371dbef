package theme

// Variant is the branding of one app built from this code base.
type Variant struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Tagline     string `json:"tagline"`
	Headline    string `json:"headline"`
	Pitch       string `json:"pitch"`
	SignUpPitch string `json:"sign_up_pitch"`
	ReturnPitch string `json:"return_pitch"`
	// ProfilePitch is shown under the completion bar.
	ProfilePitch string `json:"profile_pitch"`
	// HomeAction is the label of the primary button on the home tab.
	HomeAction string `json:"home_action"`
	LogoLight  string `json:"logo_light"`
	LogoDark   string `json:"logo_dark"`
}

const (
	VariantJirani  = "jirani"
	VariantBiblion = "biblion"
)

var variants = map[string]Variant{
	VariantJirani: {
		Key:          VariantJirani,
		Name:         "Jirani",
		Tagline:      "Digital Tourism Adventure Pass",
		Headline:     "Plan trips smarter with Jirani",
		Pitch:        "Discover destinations, build itineraries, track budgets, and coordinate with friends, all in one place.",
		SignUpPitch:  "Build itineraries, split costs, and coordinate with friends, all in one place.",
		ReturnPitch:  "Pick up your trips, itineraries, and budgets right where you left off.",
		ProfilePitch: "Complete your profile to let Jirani book flights, hotels, rides & attractions under a single Pass.",
		HomeAction:   "Create Trip Plan",
		LogoLight:    "assets/icons/splash-icon-light.png",
		LogoDark:     "assets/icons/splash-icon-dark.png",
	},
	VariantBiblion: {
		Key:          VariantBiblion,
		Name:         "Biblion",
		Tagline:      "Scripture for every day",
		Headline:     "Read deeper with Biblion",
		Pitch:        "Follow reading plans, save passages, and keep notes, all in one place.",
		SignUpPitch:  "Follow reading plans, save passages, and keep notes, all in one place.",
		ReturnPitch:  "Pick up your reading plan right where you left off.",
		ProfilePitch: "Complete your profile to sync your reading plans across devices.",
		HomeAction:   "Start Reading Plan",
		LogoLight:    "assets/icons/biblion-icon-light.png",
		LogoDark:     "assets/icons/biblion-icon-dark.png",
	},
}

// VariantFor returns the branding for key, Jirani when the key is unknown.
func VariantFor(key string) Variant {
	if v, ok := variants[key]; ok {
		return v
	}
	return variants[VariantJirani]
}

// Welcome is the small caps greeting above the headline.
func (v Variant) Welcome() string {
	return "Welcome to " + v.Name
}

// Logo picks the asset that contrasts with the scheme background.
func (v Variant) Logo(scheme Scheme) string {
	if scheme == Dark {
		return v.LogoLight
	}
	return v.LogoDark
}

// Theme is everything a client needs to render: palette plus branding.
type Theme struct {
	Scheme   Scheme   `json:"scheme"`
	Platform Platform `json:"platform"`
	Palette  Palette  `json:"palette"`
	Warning  string   `json:"warning"`
	OnText   string   `json:"on_text"`
	Logo     string   `json:"logo"`
	Variant  Variant  `json:"variant"`
}

// Resolve builds the Theme for a variant, scheme and platform.
func Resolve(variant string, scheme Scheme, platform Platform) Theme {
	v := VariantFor(variant)
	return Theme{
		Scheme:   scheme,
		Platform: platform,
		Palette:  For(scheme, platform),
		Warning:  Warning(scheme),
		OnText:   OnText(scheme),
		Logo:     v.Logo(scheme),
		Variant:  v,
	}
}
