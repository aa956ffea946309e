// Package screentest provides helpers for screen tests.
package screentest

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/educareer/internal/assessment"
	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/logger"
	"github.com/abhisek/educareer/internal/mentor"
	"github.com/abhisek/educareer/internal/oracle"
	"github.com/abhisek/educareer/internal/screens"
	"github.com/abhisek/educareer/internal/session"
)

// Env returns an English environment backed by a Fake oracle.
func Env() (screens.Env, *oracle.Fake) {
	fake := oracle.NewFake()
	log := logger.Nop()
	env := screens.Env{
		Session: session.New(session.WithLanguage(catalog.English)),
		Mentor:  mentor.New(fake, log),
		Log:     log,
	}
	return env, fake
}

// Placed logs in and completes a perfect placement on spec.
func Placed(env screens.Env, spec catalog.Specialization) error {
	if err := env.Session.SelectSpecialization(spec); err != nil {
		return err
	}
	if err := env.Session.Authenticate(session.Credentials{Name: "Sara", Email: "sara@example.com"}); err != nil {
		return err
	}
	e, err := env.Mentor.StartPlacement(context.Background(), env.Session)
	if err != nil {
		return err
	}
	for i, a := range oracle.CorrectAnswers() {
		if err := env.Session.RecordAnswer(i, a); err != nil {
			return err
		}
		if _, err := env.Session.Advance(); err != nil {
			return err
		}
	}
	if !e.Finished() {
		return assessment.ErrNotFinished
	}
	_, err = env.Mentor.FinishPlacement(context.Background(), env.Session)
	return err
}

// Key returns a printable key press.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special returns a key press without text, such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Run executes cmd and returns its message, or nil.
func Run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
