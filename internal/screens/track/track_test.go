package track

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/router"
	"github.com/abhisek/educareer/internal/screens/screentest"
	"github.com/abhisek/educareer/internal/session"
)

func TestShowsTrack(t *testing.T) {
	env, _ := screentest.Env()
	s := New(env, catalog.Accounting)

	info, _ := env.Session.Catalog().Lookup(catalog.Accounting)
	if s.Title() != info.Title.EN {
		t.Errorf("expected title %q, got %q", info.Title.EN, s.Title())
	}
	view := s.View(120, 60)
	if !strings.Contains(view, "Start this track") {
		t.Error("view should show the start button")
	}
	if !strings.Contains(view, "Roadmap") {
		t.Error("view should show the roadmap")
	}
}

func TestStartAsGuestHoldsPending(t *testing.T) {
	env, _ := screentest.Env()
	if err := env.Session.Browse(); err != nil {
		t.Fatal(err)
	}
	s := New(env, catalog.Finance)

	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	nav, ok := screentest.Run(cmd).(router.NavigateMsg)
	if !ok {
		t.Fatal("expected NavigateMsg")
	}
	// The guard turns this into the login page for guests.
	if nav.Route != session.RouteAssessment {
		t.Errorf("expected assessment route, got %v", nav.Route)
	}
	if got := env.Session.Resolve(nav.Route); got != session.RouteAuth {
		t.Errorf("expected guard to resolve to auth, got %v", got)
	}
	if p, ok := env.Session.Pending(); !ok || p != catalog.Finance {
		t.Errorf("expected finance pending, got %q", p)
	}
}

func TestStartInWrongStateShowsError(t *testing.T) {
	env, _ := screentest.Env()
	if err := screentest.Placed(env, catalog.Accounting); err != nil {
		t.Fatal(err)
	}
	s := New(env, catalog.Finance)

	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no navigation from the dashboard state")
	}
	if s.err == "" {
		t.Error("expected an error message")
	}
}

func TestScrollIsClamped(t *testing.T) {
	env, _ := screentest.Env()
	s := New(env, catalog.Accounting)

	for i := 0; i < 500; i++ {
		s.Update(screentest.Key('j'))
	}
	s.View(100, 20)
	if s.offset <= 0 || s.offset >= 500 {
		t.Errorf("expected offset clamped to content, got %d", s.offset)
	}
	for i := 0; i < 600; i++ {
		s.Update(screentest.Key('k'))
	}
	if s.offset != 0 {
		t.Errorf("expected offset 0, got %d", s.offset)
	}
}
