package dashboard

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/router"
	"github.com/abhisek/educareer/internal/screens/screentest"
	"github.com/abhisek/educareer/internal/session"
)

// pick moves to the item with the given label and presses enter.
func pick(t *testing.T, d *DashboardScreen, label string) tea.Msg {
	t.Helper()
	for i, item := range d.menu.Items {
		if item.Label == label {
			d.menu.Selected = i
			_, cmd := d.Update(screentest.Special(tea.KeyEnter))
			return screentest.Run(cmd)
		}
	}
	t.Fatalf("no menu item %q", label)
	return nil
}

func TestPlacedDashboard(t *testing.T) {
	env, _ := screentest.Env()
	if err := screentest.Placed(env, catalog.Accounting); err != nil {
		t.Fatal(err)
	}
	d := New(env)

	view := d.View(100, 40)
	for _, want := range []string{"Welcome, Sara", "Placement score: 10/10", "Today's task"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	msg := pick(t, d, "Today's task")
	nav, ok := msg.(router.NavigateMsg)
	if !ok || nav.Route.Page != session.PageTasks {
		t.Errorf("expected tasks navigation, got %#v", msg)
	}

	msg = pick(t, d, "AI mentor")
	if _, ok := msg.(router.PushScreenMsg); !ok {
		t.Errorf("expected the chat screen to be pushed, got %T", msg)
	}
}

func TestNoTrackDashboard(t *testing.T) {
	env, _ := screentest.Env()
	if err := env.Session.BeginLogin(); err != nil {
		t.Fatal(err)
	}
	if err := env.Session.Authenticate(session.Credentials{Name: "Lina"}); err != nil {
		t.Fatal(err)
	}
	d := New(env)

	if !strings.Contains(d.View(100, 40), "not picked a track") {
		t.Error("expected the no track hint")
	}
	msg := pick(t, d, "Choose a track")
	if nav, ok := msg.(router.NavigateMsg); !ok || nav.Route != session.RouteDiscover {
		t.Errorf("expected discover navigation, got %#v", msg)
	}
}

func TestRetakeStartsAssessment(t *testing.T) {
	env, _ := screentest.Env()
	if err := screentest.Placed(env, catalog.Finance); err != nil {
		t.Fatal(err)
	}
	d := New(env)

	msg := pick(t, d, "Retake placement")
	if nav, ok := msg.(router.NavigateMsg); !ok || nav.Route != session.RouteAssessment {
		t.Errorf("expected assessment navigation, got %#v", msg)
	}
	if env.Session.Kind() != session.KindInAssessment {
		t.Errorf("expected in_assessment, got %s", env.Session.Kind())
	}
	if len(env.Session.User().CompletedTasks) != 0 {
		t.Error("retake should keep the (empty) task history")
	}
}

func TestLogout(t *testing.T) {
	env, _ := screentest.Env()
	if err := screentest.Placed(env, catalog.Finance); err != nil {
		t.Fatal(err)
	}
	d := New(env)

	msg := pick(t, d, "Log out")
	if nav, ok := msg.(router.NavigateMsg); !ok || nav.Route != session.RouteHome {
		t.Errorf("expected home navigation, got %#v", msg)
	}
	if env.Session.Kind() != session.KindAnonymous {
		t.Errorf("expected anonymous, got %s", env.Session.Kind())
	}
}
