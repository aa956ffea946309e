package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/educareer/internal/app"
	"github.com/abhisek/educareer/internal/session"
	"github.com/abhisek/educareer/internal/sessions"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the interactive terminal app",
	RunE: func(cmd *cobra.Command, args []string) error {
		skip, _ := cmd.Flags().GetBool("skip-welcome")
		return runApp(cmd, skip)
	},
}

func init() {
	playCmd.Flags().Bool("skip-welcome", false, "Start on the home screen")
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, skipWelcome bool) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer log.Sync()

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	m, err := buildMentor(ctx, cmd, cfg, st.EventRepo(), log)
	if err != nil {
		return err
	}

	sess := session.New(
		session.WithLanguage(cfg.DefaultLanguage),
		session.WithListener(sessions.RecordTransitions(st.EventRepo(), nil, log)),
	)
	log.Info("tui session started", "session_id", sess.ID())

	return app.Run(app.Options{
		Session:     sess,
		Mentor:      m,
		Logger:      log,
		SkipWelcome: skipWelcome,
	})
}
