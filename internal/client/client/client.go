package client

import (
	"context"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/api"
)

// Client is the account API as seen by the CLI.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	SignUp(ctx context.Context, req *api.SignUpRequest) (*api.SignUpResponse, error)
	Verify(ctx context.Context, email, code string) error
	ResendCode(ctx context.Context, email string) error
	SignIn(ctx context.Context, email, password string) error
	ChangePassword(ctx context.Context, email, current, next string) error
	ResetPassword(ctx context.Context, email string) error
	Profile(ctx context.Context) (*api.ProfileResponse, error)
	SignedIn() bool
	SignOut()
}
