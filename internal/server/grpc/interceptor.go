package grpc

import (
	"context"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/api"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// protected lists the methods that need a session token.
var protected = map[string]bool{
	api.MethodProfile: true,
}

// UserIDFromContext returns the user id stored by the token interceptor.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if !protected[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, common.Message(common.ErrInvalidToken))
	}

	userID, err := s.tokens.Verify(accessToken)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, common.Message(err))
	}

	return handler(context.WithValue(ctx, userIDKey, userID), req)
}
