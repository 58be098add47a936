package grpc

import (
	"context"
	"errors"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/api"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/common"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/models"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) SignUp(ctx context.Context, req *api.SignUpRequest) (*api.SignUpResponse, error) {

	result, err := s.accounts.Register(ctx, services.RegisterRequest{
		Email:          req.Email,
		Password:       req.Password,
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		LastName:       req.LastName,
		SecondLastName: req.SecondLastName,
		Phone:          req.Phone,
	})
	if err != nil {
		return nil, s.toStatus(ctx, "SignUp", err)
	}

	return &api.SignUpResponse{Message: api.MsgSignedUp, UserID: result.UserID, Email: result.Email}, nil
}

func (s *GRPCServer) Verify(ctx context.Context, req *api.VerifyRequest) (*api.TokenResponse, error) {

	token, err := s.accounts.Verify(ctx, req.Email, req.Code)
	if err != nil {
		return nil, s.toStatus(ctx, "Verify", err)
	}

	return &api.TokenResponse{Message: api.MsgVerified, Token: token}, nil
}

func (s *GRPCServer) ResendCode(ctx context.Context, req *api.EmailRequest) (*api.MessageResponse, error) {

	if err := s.accounts.ResendCode(ctx, req.Email); err != nil {
		return nil, s.toStatus(ctx, "ResendCode", err)
	}

	return &api.MessageResponse{Message: api.MsgCodeResent}, nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *api.SignInRequest) (*api.TokenResponse, error) {

	token, err := s.accounts.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "SignIn", err)
	}

	return &api.TokenResponse{Message: api.MsgSignedIn, Token: token}, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *api.ChangePasswordRequest) (*api.MessageResponse, error) {

	if err := s.accounts.ChangePassword(ctx, req.Email, req.Password, req.NewPassword); err != nil {
		return nil, s.toStatus(ctx, "ChangePassword", err)
	}

	return &api.MessageResponse{Message: api.MsgPasswordChanged}, nil
}

func (s *GRPCServer) ResetPassword(ctx context.Context, req *api.EmailRequest) (*api.MessageResponse, error) {

	if err := s.accounts.ResetPassword(ctx, req.Email); err != nil {
		return nil, s.toStatus(ctx, "ResetPassword", err)
	}

	return &api.MessageResponse{Message: api.MsgPasswordReset}, nil
}

func (s *GRPCServer) Profile(ctx context.Context, _ *api.ProfileRequest) (*api.ProfileResponse, error) {

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, common.Message(common.ErrInvalidToken))
	}

	user, err := s.accounts.Profile(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "Profile", err)
	}

	return toProfile(user), nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}

// toStatus turns a service error into a status carrying the stable message
// of its kind. Server-side failures are logged with their detail.
func (s *GRPCServer) toStatus(ctx context.Context, method string, err error) error {
	kind := common.Kind(err)
	code := codeFor(kind)
	if code == codes.Internal {
		s.logger.Error(ctx, "request failed", "method", method, "error", err)
	} else {
		s.logger.Debug(ctx, "request rejected", "method", method, "error", err)
	}
	return status.Error(code, common.Message(kind))
}

func codeFor(kind error) codes.Code {
	switch {
	case errors.Is(kind, common.ErrorNotFound):
		return codes.NotFound
	case errors.Is(kind, common.ErrNotVerified):
		return codes.PermissionDenied
	case errors.Is(kind, common.ErrInvalidToken), errors.Is(kind, common.ErrTokenExpired):
		return codes.Unauthenticated
	case errors.Is(kind, common.ErrResendTooSoon):
		return codes.ResourceExhausted
	case errors.Is(kind, common.ErrNotificationFailure),
		errors.Is(kind, common.ErrConfiguration),
		errors.Is(kind, common.ErrorInternal):
		return codes.Internal
	default:
		return codes.InvalidArgument
	}
}

func toProfile(u *models.User) *api.ProfileResponse {
	return &api.ProfileResponse{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		MiddleName:     u.MiddleName,
		LastName:       u.LastName,
		SecondLastName: u.SecondLastName,
		Phone:          u.Phone,
		Role:           u.RoleName,
		Status:         string(u.Login.Status),
		CreatedAt:      u.CreatedAt,
	}
}
