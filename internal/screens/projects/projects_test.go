package projects

import (
	"strings"
	"testing"

	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/screens/screentest"
	"github.com/abhisek/educareer/internal/session"
)

func TestProjectsUnlockState(t *testing.T) {
	env, _ := screentest.Env()
	if err := screentest.Placed(env, catalog.Accounting); err != nil {
		t.Fatal(err)
	}
	view := New(env).View(120, 40)

	if strings.Count(view, "Unlocked") != 2 {
		t.Errorf("expected 2 unlocked projects at level 3, got view:\n%s", view)
	}
	if !strings.Contains(view, "Finish 10 daily tasks") {
		t.Error("expected the group project requirement")
	}
	if New(env).Back() != session.RouteDashboard {
		t.Error("expected back to dashboard")
	}
}
