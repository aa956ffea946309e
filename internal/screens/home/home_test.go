package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/router"
	"github.com/abhisek/educareer/internal/screens/screentest"
	"github.com/abhisek/educareer/internal/session"
)

func TestGuestPicksTrackFromLanding(t *testing.T) {
	env, _ := screentest.Env()
	h := New(env)

	first := env.Session.Catalog().All()[0]
	if got := h.menu.Items[0].Label; got != first.Title.EN {
		t.Fatalf("expected first item %q, got %q", first.Title.EN, got)
	}

	_, cmd := h.Update(screentest.Special(tea.KeyEnter))
	msg := screentest.Run(cmd)
	nav, ok := msg.(router.NavigateMsg)
	if !ok {
		t.Fatalf("expected NavigateMsg, got %T", msg)
	}
	if nav.Route != session.RouteAssessment {
		t.Errorf("expected assessment route, got %v", nav.Route)
	}
	if env.Session.Kind() != session.KindAuthenticating {
		t.Errorf("expected authenticating, got %s", env.Session.Kind())
	}
	if p, ok := env.Session.Pending(); !ok || p != first.ID {
		t.Errorf("expected pending %s, got %s", first.ID, p)
	}
}

func TestGuestMenuOffersLogin(t *testing.T) {
	env, _ := screentest.Env()
	h := New(env)

	view := h.View(100, 30)
	if !strings.Contains(view, "Log in") {
		t.Error("guest landing should offer login")
	}
	if strings.Contains(view, "My dashboard") {
		t.Error("guest landing should not offer the dashboard")
	}
}

func TestPlacedUserSeesDashboardOnly(t *testing.T) {
	env, _ := screentest.Env()
	if err := screentest.Placed(env, catalog.Finance); err != nil {
		t.Fatalf("placement: %v", err)
	}
	h := New(env)

	// Explore tracks, My dashboard, Exit.
	if len(h.menu.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(h.menu.Items))
	}
	if h.menu.Items[1].Label != "My dashboard" {
		t.Errorf("expected dashboard entry, got %q", h.menu.Items[1].Label)
	}
}

func TestLabelsFollowLanguage(t *testing.T) {
	env, _ := screentest.Env()
	h := New(env)
	env.Session.SetLanguage(catalog.Arabic)

	h.Update(screentest.Special(tea.KeyDown))
	if h.Title() != "الرئيسية" {
		t.Errorf("expected Arabic title, got %q", h.Title())
	}
	first := env.Session.Catalog().All()[0]
	if h.menu.Items[0].Label != first.Title.AR {
		t.Errorf("expected Arabic label, got %q", h.menu.Items[0].Label)
	}
	if h.menu.Selected != 1 {
		t.Errorf("expected selection to survive rebuild, got %d", h.menu.Selected)
	}
}
