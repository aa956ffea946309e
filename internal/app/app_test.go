package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/router"
	"github.com/abhisek/educareer/internal/screens/auth"
	"github.com/abhisek/educareer/internal/screens/dashboard"
	"github.com/abhisek/educareer/internal/screens/discover"
	"github.com/abhisek/educareer/internal/screens/home"
	"github.com/abhisek/educareer/internal/screens/screentest"
	"github.com/abhisek/educareer/internal/screens/track"
	"github.com/abhisek/educareer/internal/screens/welcome"
	"github.com/abhisek/educareer/internal/session"
	"github.com/abhisek/educareer/internal/ui/layout"
)

func newTestApp(t *testing.T) AppModel {
	t.Helper()
	env, _ := screentest.Env()
	return newAppModel(Options{Session: env.Session, Mentor: env.Mentor, Logger: env.Log, SkipWelcome: true})
}

func send(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestStartsOnWelcome(t *testing.T) {
	env, _ := screentest.Env()
	m := newAppModel(Options{Session: env.Session, Mentor: env.Mentor})
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Fatalf("expected welcome screen, got %T", m.router.Active())
	}
	if m.Init() == nil {
		t.Error("expected the welcome animation to start")
	}
}

func TestGuardSendsGuestToLogin(t *testing.T) {
	m := newTestApp(t)
	m, _ = send(m, router.NavigateMsg{Route: session.RouteDashboard})

	if _, ok := m.router.Active().(*auth.AuthScreen); !ok {
		t.Fatalf("expected auth screen, got %T", m.router.Active())
	}
	if m.env.Session.Kind() != session.KindAuthenticating {
		t.Errorf("expected authenticating, got %s", m.env.Session.Kind())
	}
}

func TestUnknownTrackFallsBackToCatalog(t *testing.T) {
	m := newTestApp(t)
	m, _ = send(m, router.NavigateMsg{Route: session.TrackRoute(catalog.Investment)})

	if _, ok := m.router.Active().(*discover.DiscoverScreen); !ok {
		t.Fatalf("expected discover screen, got %T", m.router.Active())
	}
	if m.env.Session.Kind() != session.KindBrowsing {
		t.Errorf("expected browsing, got %s", m.env.Session.Kind())
	}
}

func TestTrackIsPushedOverCatalog(t *testing.T) {
	m := newTestApp(t)
	m, _ = send(m, router.NavigateMsg{Route: session.RouteDiscover})
	m, _ = send(m, router.NavigateMsg{Route: session.TrackRoute(catalog.Finance)})

	if _, ok := m.router.Active().(*track.TrackScreen); !ok {
		t.Fatalf("expected track screen, got %T", m.router.Active())
	}
	if m.router.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", m.router.Depth())
	}

	m, cmd := send(m, screentest.Special(tea.KeyEscape))
	msg := screentest.Run(cmd)
	if _, ok := msg.(router.PopScreenMsg); !ok {
		t.Fatalf("expected PopScreenMsg, got %T", msg)
	}
	m, _ = send(m, msg)
	if _, ok := m.router.Active().(*discover.DiscoverScreen); !ok {
		t.Errorf("expected discover after pop, got %T", m.router.Active())
	}

	_, cmd = send(m, screentest.Special(tea.KeyEscape))
	nav, ok := screentest.Run(cmd).(router.NavigateMsg)
	if !ok || nav.Route != session.RouteHome {
		t.Errorf("expected catalog back to home, got %v", nav.Route)
	}
}

func TestPlacedUserReachesDashboard(t *testing.T) {
	env, _ := screentest.Env()
	if err := screentest.Placed(env, catalog.Accounting); err != nil {
		t.Fatal(err)
	}
	m := newAppModel(Options{Session: env.Session, Mentor: env.Mentor, SkipWelcome: true})
	m, _ = send(m, router.NavigateMsg{Route: session.RouteAuth})

	if _, ok := m.router.Active().(*dashboard.DashboardScreen); !ok {
		t.Fatalf("expected dashboard for a logged in user, got %T", m.router.Active())
	}
	status := m.status()
	if !strings.Contains(status, "EN") || !strings.Contains(status, "Accounting") {
		t.Errorf("unexpected header status %q", status)
	}
}

func TestLanguageToggle(t *testing.T) {
	m := newTestApp(t)
	m, _ = send(m, tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl})

	if m.env.Session.Language() != catalog.Arabic {
		t.Errorf("expected Arabic, got %s", m.env.Session.Language())
	}
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Errorf("toggle should not navigate, got %T", m.router.Active())
	}
}

func TestHeaderShowsBrandAndStatus(t *testing.T) {
	m := newTestApp(t)
	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	header := layout.RenderHeader(m.router.Active().Title(), m.status(), m.width)
	if !strings.Contains(header, "EduCareer") {
		t.Error("expected the header brand")
	}
	if !strings.Contains(header, "EN") {
		t.Error("expected the language in the header")
	}
}
