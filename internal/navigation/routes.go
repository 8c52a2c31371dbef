// Package navigation holds the app's route table and an in-memory router.
package navigation

// Route is an opaque screen path.
type Route string

const (
	Splash      Route = "/"
	SignIn      Route = "/(auth)/sign-in"
	EmailSignIn Route = "/(auth)/email-sign-in"
	SignUp      Route = "/(auth)/sign-up"
	Home        Route = "/(tabs)/home"
	Browse      Route = "/(tabs)/browse"
	Profile     Route = "/(tabs)/profile"

	ProfileEdit     Route = "/profile/edit"
	PaymentMethods  Route = "/profile/payment"
	TravelDocuments Route = "/profile/documents"
	Settings        Route = "/settings"
	Notifications   Route = "/settings/notifications"
	Privacy         Route = "/legal/privacy"
	Terms           Route = "/legal/terms"
	Support         Route = "/support"
	About           Route = "/about"
)

// Router is the navigation collaborator of the screens.
type Router interface {
	Push(route Route)
	Replace(route Route)
	Back()
}

// Tab is an entry of the bottom tab bar.
type Tab struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Route Route  `json:"route"`
}

// Tabs returns the tab bar for the given app variant.
func Tabs(variant string) []Tab {
	homeTitle := "Trips"
	browseTitle := "Browse"
	if variant == "biblion" {
		homeTitle = "Read"
		browseTitle = "Library"
	}
	return []Tab{
		{Name: "home", Title: homeTitle, Icon: "home", Route: Home},
		{Name: "browse", Title: browseTitle, Icon: "compass", Route: Browse},
		{Name: "profile", Title: "Profile", Icon: "user", Route: Profile},
	}
}

// MenuItem is an entry of the profile dropdown. Exactly one of Route or Action is set.
type MenuItem struct {
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Route  Route  `json:"route,omitempty"`
	Action string `json:"action,omitempty"`
}

// ActionLogOut is the action name of the log out menu entry.
const ActionLogOut = "log_out"

// ProfileMenu returns the profile dropdown entries in display order.
func ProfileMenu() []MenuItem {
	return []MenuItem{
		{Label: "Settings", Icon: "settings", Route: Settings},
		{Label: "Privacy", Icon: "shield", Route: Privacy},
		{Label: "Terms", Icon: "file-text", Route: Terms},
		{Label: "Payment Methods", Icon: "credit-card", Route: PaymentMethods},
		{Label: "Travel Documents", Icon: "id-card", Route: TravelDocuments},
		{Label: "Notifications", Icon: "bell", Route: Notifications},
		{Label: "Help & Support", Icon: "help-circle", Route: Support},
		{Label: "About", Icon: "info", Route: About},
		{Label: "Log out", Icon: "log-out", Action: ActionLogOut},
	}
}
