// Package httpserver exposes the account service as a JSON API under
// /api/v1 using chi.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/logging"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/models"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	BasePath = "/api/v1"

	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
	maxBodyBytes      = 1 << 20
)

// Accounts is the business API served over HTTP.
type Accounts interface {
	Register(ctx context.Context, req services.RegisterRequest) (*services.RegisterResult, error)
	Verify(ctx context.Context, email, code string) (string, error)
	ResendCode(ctx context.Context, email string) error
	SignIn(ctx context.Context, email, password string) (string, error)
	ChangePassword(ctx context.Context, email, current, next string) error
	ResetPassword(ctx context.Context, email string) error
	Profile(ctx context.Context, userID string) (*models.User, error)
}

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type Server struct {
	address  string
	accounts Accounts
	tokens   TokenVerifier
	logger   logging.Logger

	// exposeErrors adds internal error detail to error bodies.
	exposeErrors bool
}

func NewServer(address string, l logging.Logger, accounts Accounts, tokens TokenVerifier, production bool) *Server {
	return &Server{
		address:      address,
		accounts:     accounts,
		tokens:       tokens,
		logger:       l.With("module", "http_server"),
		exposeErrors: !production,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)

	r.Route(BasePath, func(r chi.Router) {
		r.Post("/authentication/signup", s.signUp)
		r.Post("/authentication/verify", s.verify)
		r.Post("/authentication/resend", s.resend)
		r.Post("/authentication/signin", s.signIn)

		r.Post("/password/change", s.changePassword)
		r.Post("/password/reset", s.resetPassword)

		r.Group(func(auth chi.Router) {
			auth.Use(s.bearerAuth)
			auth.Get("/users/me", s.me)
		})
	})

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
