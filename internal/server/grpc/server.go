// Package grpc exposes the account service over gRPC. Messages are the
// internal/api structs carried by the JSON codec.
package grpc

import (
	"context"
	"net"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/api"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/logging"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/models"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/services"
	"google.golang.org/grpc"
)

// Accounts is the business API served by the gRPC surface.
type Accounts interface {
	Register(ctx context.Context, req services.RegisterRequest) (*services.RegisterResult, error)
	Verify(ctx context.Context, email, code string) (string, error)
	ResendCode(ctx context.Context, email string) error
	SignIn(ctx context.Context, email, password string) (string, error)
	ChangePassword(ctx context.Context, email, current, next string) error
	ResetPassword(ctx context.Context, email string) error
	Profile(ctx context.Context, userID string) (*models.User, error)
}

// TokenVerifier resolves a session token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type GRPCServer struct {
	address  string
	accounts Accounts
	tokens   TokenVerifier
	logger   logging.Logger
}

var _ api.AccountServiceServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, accounts Accounts, tokens TokenVerifier) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		accounts: accounts,
		tokens:   tokens,
	}
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	api.RegisterAccountServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	return srv.Serve(listen)
}
