package screens

import (
	"github.com/jirani-app/app-jirani/internal/navigation"
	"github.com/jirani-app/app-jirani/internal/theme"
)

// Tabs is the bottom tab bar of the signed-in area.
func Tabs(d Deps) []navigation.Tab {
	return navigation.Tabs(d.Variant.Key)
}

// Home is the first tab.
type Home struct {
	deps Deps
}

func NewHome(d Deps) *Home {
	return &Home{deps: d}
}

func (h *Home) Title() string { return h.deps.Variant.Name }

func (h *Home) Logo(scheme theme.Scheme) string { return h.deps.Variant.Logo(scheme) }

// ActionLabel is the text of the header button.
func (h *Home) ActionLabel() string { return h.deps.Variant.HomeAction }

// CreatePlan opens the browse tab to start a plan.
func (h *Home) CreatePlan() {
	h.deps.Router.Push(navigation.Browse)
}

// Browse is the second tab.
type Browse struct {
	deps Deps
}

func NewBrowse(d Deps) *Browse {
	return &Browse{deps: d}
}

func (b *Browse) Title() string {
	for _, t := range Tabs(b.deps) {
		if t.Route == navigation.Browse {
			return t.Title
		}
	}
	return "Browse"
}
