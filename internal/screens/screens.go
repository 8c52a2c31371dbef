// Package screens holds one headless controller per app screen. Controllers
// compose the form, profile and navigation models; rendering is left to the
// client.
package screens

import (
	"time"

	"github.com/jirani-app/app-jirani/internal/account"
	"github.com/jirani-app/app-jirani/internal/logging"
	"github.com/jirani-app/app-jirani/internal/navigation"
	"github.com/jirani-app/app-jirani/internal/theme"
)

// Deps are the collaborators shared by every screen.
type Deps struct {
	Client  account.Client
	Router  navigation.Router
	Variant theme.Variant
	// Timeout bounds each account call; zero means no limit.
	Timeout time.Duration
	Logger  *logging.SafeLogger
	Now     func() time.Time
}

func (d Deps) logger() *logging.SafeLogger {
	if d.Logger == nil {
		return logging.Logger
	}
	return d.Logger
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// Copy is the static text block at the top of a screen.
type Copy struct {
	Eyebrow  string `json:"eyebrow"`
	Headline string `json:"headline"`
	Body     string `json:"body"`
}
