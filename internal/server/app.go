// Package server wires the account service together and runs its HTTP and
// gRPC surfaces until the process is signaled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/logging"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/auth"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/config"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/cooldown"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/httpserver"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/notify"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/repositories/repomanager"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/services"
	"github.com/redis/go-redis/v9"

	gs "github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	redis    *redis.Client
	tokens   *auth.TokenIssuer
	accounts *services.AccountService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewForEnv(c.Env, os.Stdout)

	tokens, err := auth.NewTokenIssuer(c.SecretKey, c.TokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	notifier, err := newNotifier(c, logger)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	limiter, client, err := newLimiter(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	accounts := services.NewAccountService(db, rm, tokens, notifier, limiter, logger, c)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		redis:    client,
		tokens:   tokens,
		accounts: accounts,
	}, nil
}

// newNotifier picks the delivery channel configured for account emails.
func newNotifier(c *config.Config, logger logging.Logger) (notify.Notifier, error) {
	switch c.Notifier {
	case config.NotifierSMTP:
		return notify.NewSMTPMailer(c.SMTP), nil
	case config.NotifierLog:
		logger.Warn(context.Background(), "log notifier enabled, codes and passwords will be written to the log")
		return notify.NewLogNotifier(logger), nil
	default:
		return nil, fmt.Errorf("unknown notifier %q", c.Notifier)
	}
}

// newLimiter returns the resend cooldown. Without a Redis address or a
// positive window the cooldown is disabled and the client is nil.
func newLimiter(ctx context.Context, c *config.Config) (cooldown.Limiter, *redis.Client, error) {
	if c.Redis.Addr == "" || c.ResendCooldown <= 0 {
		return cooldown.Noop{}, nil, nil
	}

	client, err := cooldown.NewRedisClient(ctx, c.Redis)
	if err != nil {
		return nil, nil, err
	}
	return cooldown.NewRedisLimiter(client, c.ResendCooldown), client, nil
}

// Run serves both surfaces until ctx is canceled, a termination signal
// arrives or one of the servers fails. Resources are released on return.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	defer app.close()

	app.logger.Info(ctx, "Starting app...", "env", app.config.Env)

	httpSrv := httpserver.NewServer(app.config.HTTPAddr, app.logger, app.accounts, app.tokens, app.config.IsProduction())
	grpcSrv := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.accounts, app.tokens)

	runners := []func(context.Context) error{httpSrv.Run, grpcSrv.Run}

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	for _, run := range runners {
		run := run
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(ctx); err != nil {
				app.logger.Error(ctx, err.Error())
				once.Do(func() { firstErr = err })
			}
			// one surface down takes the other with it
			cancel()
		}()
	}

	wg.Wait()
	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	return firstErr
}

func (app *App) close() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(context.Background(), "failed to close redis client", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(context.Background(), "failed to close database", "error", err)
	}
}
