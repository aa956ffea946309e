package portfolio

import (
	"context"
	"strings"
	"testing"

	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/screens/screentest"
)

func TestEmptyPortfolio(t *testing.T) {
	env, _ := screentest.Env()
	if err := screentest.Placed(env, catalog.Finance); err != nil {
		t.Fatal(err)
	}
	view := New(env).View(100, 40)
	for _, want := range []string{"Sara", "Placement score: 10/10", "No completed tasks yet"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPortfolioListsTasks(t *testing.T) {
	env, _ := screentest.Env()
	if err := screentest.Placed(env, catalog.Finance); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if _, err := env.Mentor.DailyTask(ctx, env.Session); err != nil {
		t.Fatal(err)
	}
	if _, err := env.Mentor.Submit(ctx, env.Session, "done"); err != nil {
		t.Fatal(err)
	}
	if err := env.Mentor.Confirm(ctx, env.Session); err != nil {
		t.Fatal(err)
	}

	view := New(env).View(120, 40)
	if !strings.Contains(view, "Completed tasks") {
		t.Error("expected the task list")
	}
	if !strings.Contains(view, "★") {
		t.Error("expected the best task marker")
	}
	if !strings.Contains(view, "Average score: 85.0") {
		t.Error("expected the average score")
	}
}

func TestGuestSeesLoginHint(t *testing.T) {
	env, _ := screentest.Env()
	if !strings.Contains(New(env).View(80, 20), "Please log in") {
		t.Error("expected the login hint")
	}
}
