package chat

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/oracle"
	"github.com/abhisek/educareer/internal/screens/screentest"
)

func TestSendAndReceive(t *testing.T) {
	env, _ := screentest.Env()
	if err := screentest.Placed(env, catalog.Accounting); err != nil {
		t.Fatal(err)
	}
	c := New(env)
	c.input.SetValue("How do I close the books?")

	_, cmd := c.Update(screentest.Special(tea.KeyEnter))
	if !c.waiting {
		t.Error("expected waiting after send")
	}
	if c.input.Value() != "" {
		t.Error("expected input cleared")
	}
	c.Update(screentest.Run(cmd))

	if c.waiting {
		t.Error("expected waiting cleared after reply")
	}
	view := c.View(100, 30)
	if !strings.Contains(view, "How do I close the books?") {
		t.Error("view should show the question")
	}
	if !strings.Contains(view, "[accounting]") {
		t.Error("view should show the mentor reply")
	}
}

func TestFallbackReplyIsShown(t *testing.T) {
	env, fake := screentest.Env()
	if err := screentest.Placed(env, catalog.Accounting); err != nil {
		t.Fatal(err)
	}
	fake.ChatErr = fmt.Errorf("%w: offline", oracle.ErrUnavailable)
	c := New(env)
	c.input.SetValue("hello")

	_, cmd := c.Update(screentest.Special(tea.KeyEnter))
	c.Update(screentest.Run(cmd))

	if c.err != "" {
		t.Errorf("fallback should not surface as an error, got %q", c.err)
	}
	if !strings.Contains(c.View(100, 30), oracle.FallbackChatReply(catalog.English)) {
		t.Error("view should show the fallback reply")
	}
}

func TestBlankMessageIsNotSent(t *testing.T) {
	env, fake := screentest.Env()
	if err := screentest.Placed(env, catalog.Accounting); err != nil {
		t.Fatal(err)
	}
	c := New(env)
	c.input.SetValue("   ")

	_, cmd := c.Update(screentest.Special(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command for a blank message")
	}
	if fake.Calls("Chat") != 0 {
		t.Error("oracle should not be called")
	}
}

func TestGuestGetsError(t *testing.T) {
	env, _ := screentest.Env()
	c := New(env)
	c.input.SetValue("hello")

	_, cmd := c.Update(screentest.Special(tea.KeyEnter))
	c.Update(screentest.Run(cmd))
	if c.err == "" {
		t.Error("expected an error without a track")
	}
}
