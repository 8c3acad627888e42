package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/carbonshop/modules/mediator"
	"github.com/dmitrymomot/carbonshop/pkg/config"
	"github.com/dmitrymomot/carbonshop/pkg/distlock"
	"github.com/dmitrymomot/carbonshop/pkg/email"
	"github.com/dmitrymomot/carbonshop/pkg/lifecycle"
	"github.com/dmitrymomot/carbonshop/pkg/logger"
	"github.com/dmitrymomot/carbonshop/pkg/pg"
	"github.com/dmitrymomot/carbonshop/pkg/redis"
	"github.com/dmitrymomot/carbonshop/pkg/requestid"
	"github.com/dmitrymomot/carbonshop/svc/workflow"
)

type appConfig struct {
	Env             string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var appCfg appConfig
	if err := config.Load(&appCfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, "carbonshop"),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	var pgCfg pg.Config
	if err := config.Load(&pgCfg); err != nil {
		return err
	}
	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return err
	}

	var redisCfg redis.Config
	if err := config.Load(&redisCfg); err != nil {
		return err
	}
	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	var lockCfg distlock.Config
	if err := config.Load(&lockCfg); err != nil {
		return err
	}
	locker := distlock.NewRedisLocker(redisClient, lockCfg)

	var emailCfg email.Config
	if err := config.Load(&emailCfg); err != nil {
		return err
	}
	sender, err := newSender(appCfg.Env, emailCfg)
	if err != nil {
		return err
	}

	store := workflow.NewPgStore(pool)
	status, err := workflow.NewStatusCoordinator(store, locker,
		workflow.WithLogger(log),
		workflow.WithNotifier(reviewOutcomeNotifier(store, sender, log)),
	)
	if err != nil {
		return err
	}
	deletion, err := workflow.NewDeletionCoordinator(store, locker,
		workflow.WithDeletionLogger(log),
	)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", healthz(pg.Healthcheck(pool), redis.Healthcheck(redisClient)))
	r.Mount("/mediator", mediator.New(status, deletion, store, mediator.WithLogger(log)).Handle())

	srv := &http.Server{
		Addr:              appCfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "server listening", "addr", appCfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.InfoContext(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newSender(env string, cfg email.Config) (email.Sender, error) {
	if env == "production" || env == "prod" {
		return email.NewPostmarkSender(cfg)
	}
	return email.NewDevSender(cfg.DevOutputDir), nil
}

// reviewOutcomeNotifier emails account holders when mediator review settles
// their application.
func reviewOutcomeNotifier(store workflow.Store, sender email.Sender, log *slog.Logger) workflow.NotifyFunc {
	return func(ctx context.Context, change workflow.StatusChange) {
		if change.Kind != lifecycle.KindUser {
			return
		}

		user, err := store.GetUser(ctx, change.ID)
		if err != nil {
			log.ErrorContext(ctx, "load user for notification", logger.Error(err))
			return
		}

		var subject, body string
		switch change.To {
		case lifecycle.StatusApproved:
			subject = "Your marketplace account is approved"
			body = fmt.Sprintf("<p>Hi %s,</p><p>Your account has been approved. You can sign in now.</p>", user.Name)
		case lifecycle.StatusRejected:
			subject = "Your marketplace application was declined"
			body = fmt.Sprintf("<p>Hi %s,</p><p>Your application was not approved. Reply to this email for details.</p>", user.Name)
		default:
			return
		}

		if err := sender.Send(ctx, email.Params{
			To:       user.Email,
			Subject:  subject,
			BodyHTML: body,
			Tag:      "review-outcome",
		}); err != nil {
			log.ErrorContext(ctx, "send review outcome email", logger.Error(err))
		}
	}
}

func healthz(checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	}
}
