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

	"reservation-api/auth"
	"reservation-api/config"
	"reservation-api/events"
	"reservation-api/handlers"
	"reservation-api/middleware"
	"reservation-api/obs"
	"reservation-api/repository"
	"reservation-api/routes"
	"reservation-api/services"

	"github.com/gin-gonic/gin"
	flag "github.com/spf13/pflag"
	"gorm.io/gorm"
)

func main() {
	envFile := flag.String("env-file", ".env", "optional dotenv file read before the environment")
	flag.Parse()

	if err := run(*envFile); err != nil {
		fmt.Fprintln(os.Stderr, "reservation-api:", err)
		os.Exit(1)
	}
}

func run(envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	log := config.NewLogger(cfg.Env, os.Stdout)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTLPEndpoint != "" {
		shutdown, err := obs.InitTracer(ctx, cfg.OTLPEndpoint, cfg.Env)
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(sctx)
		}()
		log.Info("tracing enabled", "endpoint", cfg.OTLPEndpoint)
	}

	db, err := config.OpenDB(ctx, cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer func() { _ = config.CloseDB(db) }()
	log.Info("database ready", "driver", cfg.DBDriver)

	pub, err := newPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = pub.Close() }()

	denylist := auth.NewDenylist()
	tokens := auth.NewTokenService(cfg.JWTSecret, auth.WithTTL(cfg.JWTTTL), auth.WithDenylist(denylist))
	go sweepDenylist(ctx, denylist, time.Minute)

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.CORS(cfg.CORSOrigins),
		middleware.Timeout(cfg.RequestTimeout),
	)
	routes.SetupRoutes(r, newHandler(db, tokens, pub, cfg.AllowAdminSignup, log), tokens,
		routes.Options{RequireSession: cfg.RequireSessionForSelfService})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

func newHandler(db *gorm.DB, tokens *auth.TokenService, pub events.Publisher, allowAdminSignup bool, log *slog.Logger) *handlers.Handler {
	users := repository.NewUserRepo(db)
	restaurants := repository.NewRestaurantRepo(db)
	reservations := repository.NewReservationRepo(db)

	return handlers.New(
		services.NewAuthService(users, tokens, allowAdminSignup),
		services.NewCatalogService(restaurants, reservations),
		services.NewLedgerService(reservations, restaurants, users, pub, log),
		func(ctx context.Context) error { return config.PingDB(ctx, db) },
		log,
	)
}

func newPublisher(cfg *config.Config, log *slog.Logger) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		log.Info("no AMQP_URL set, events go to the log")
		return events.NewLogPublisher(log), nil
	}
	pub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, err
	}
	log.Info("publishing events", "exchange", cfg.AMQPExchange)
	return pub, nil
}

func sweepDenylist(ctx context.Context, d *auth.Denylist, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := d.Cleanup(now); n > 0 {
				slog.Debug("denylist swept", "removed", n)
			}
		}
	}
}
