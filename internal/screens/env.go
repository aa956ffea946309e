// Package screens holds what every EduCareer screen shares: the session it
// drives, the mentor service and bilingual label helpers.
package screens

import (
	"context"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/logger"
	"github.com/abhisek/educareer/internal/mentor"
	"github.com/abhisek/educareer/internal/session"
	"github.com/abhisek/educareer/internal/ui/theme"
)

// CallTimeout bounds one oracle-backed command.
const CallTimeout = 90 * time.Second

// Env is passed to every screen constructor.
type Env struct {
	Session *session.Session
	Mentor  *mentor.Service
	Log     *logger.Logger
}

// Lang returns the current session language.
func (e Env) Lang() catalog.Language {
	return e.Session.Language()
}

// T picks the label for the current language.
func (e Env) T(ar, en string) string {
	return catalog.Text{AR: ar, EN: en}.In(e.Lang())
}

// Context returns a context for one background call.
func (e Env) Context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), CallTimeout)
}

// Track returns the info of the user's selected track, if any.
func (e Env) Track() (catalog.Info, bool) {
	spec, ok := e.Session.User().Track()
	if !ok {
		return catalog.Info{}, false
	}
	info, err := e.Session.Catalog().Lookup(spec)
	return info, err == nil
}

// Centered renders content in the middle of the given area.
func Centered(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ErrorLine renders an error message in the error color.
func ErrorLine(msg string) string {
	return lipgloss.NewStyle().Foreground(theme.Error).Render(msg)
}
