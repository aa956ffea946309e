package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/abhisek/educareer/internal/api"
	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/config"
	"github.com/abhisek/educareer/internal/llm"
	"github.com/abhisek/educareer/internal/logger"
	"github.com/abhisek/educareer/internal/mentor"
	"github.com/abhisek/educareer/internal/metrics"
	"github.com/abhisek/educareer/internal/session"
	"github.com/abhisek/educareer/internal/sessions"
	"github.com/abhisek/educareer/internal/store"
)

const tracerName = "github.com/abhisek/educareer"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the EduCareer HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	m := metrics.New()
	mentorSvc, err := buildMentor(ctx, cmd, cfg, st.EventRepo(), log,
		llm.WithRecorder(m),
		llm.WithTracer(otel.Tracer(tracerName)),
	)
	if err != nil {
		return err
	}

	registry, closeRegistry, err := buildRegistry(ctx, cfg, st, m, mentorSvc, log)
	if err != nil {
		return err
	}
	defer closeRegistry()

	srv := api.NewServer(cfg.Server, api.Deps{
		Registry: registry,
		Mentor:   mentorSvc,
		Catalog:  catalog.Default(),
		Metrics:  m,
		Logger:   log,
	})
	return srv.Run(ctx)
}

// buildRegistry returns the configured session registry and a func that
// releases its connection. Closed sessions are dropped from the mentor.
func buildRegistry(ctx context.Context, cfg *config.Config, st *store.Store, m *metrics.Metrics, mentorSvc *mentor.Service, log *logger.Logger) (sessions.Registry, func(), error) {
	opts := []sessions.Option{
		sessions.WithTTL(cfg.Sessions.TTL),
		sessions.WithObserver(m),
		sessions.WithObserver(mentorSvc),
		sessions.WithSessionOptions(
			session.WithLanguage(cfg.DefaultLanguage),
			session.WithListener(sessions.RecordTransitions(st.EventRepo(), m, log)),
		),
	}

	switch cfg.Sessions.Backend {
	case config.BackendRedis:
		client, err := sessions.Dial(ctx, cfg.Sessions.RedisAddr, cfg.Sessions.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		log.Info("session registry", "backend", config.BackendRedis, "addr", cfg.Sessions.RedisAddr)
		return sessions.NewRedis(client, opts...), func() { _ = client.Close() }, nil
	case config.BackendMemory:
		log.Info("session registry", "backend", config.BackendMemory)
		return sessions.NewMemory(opts...), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Sessions.Backend)
}
