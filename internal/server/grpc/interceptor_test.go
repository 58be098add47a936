package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/api"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/common"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newIssuer(t *testing.T, validity time.Duration) *auth.TokenIssuer {
	t.Helper()
	issuer, err := auth.NewTokenIssuer("super-secret", validity)
	require.NoError(t, err)
	return issuer
}

// helper to build server
func newTestServer(t *testing.T, accounts Accounts) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", nopLogger{}, accounts, newIssuer(t, time.Hour))
}

func withToken(token string) context.Context {
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

var profileInfo = &grpc.UnaryServerInfo{FullMethod: api.MethodProfile}

func TestInterceptor_PublicMethod_AllowsWithoutToken(t *testing.T) {
	s := newTestServer(t, &fakeAccounts{})
	handlerCalled := false

	h := func(ctx context.Context, req any) (any, error) {
		handlerCalled = true
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: api.MethodSignIn}, h)
	require.NoError(t, err)
	assert.True(t, handlerCalled)
	assert.Equal(t, "ok", resp)
}

func TestInterceptor_Profile_RejectsBadTokens(t *testing.T) {
	expired, err := newIssuer(t, -time.Minute).Issue("user-1")
	require.NoError(t, err)

	tests := []struct {
		name    string
		ctx     context.Context
		message string
	}{
		{"missing", context.Background(), "Invalid token"},
		{"malformed", withToken("not-a-valid-jwt"), "Invalid token"},
		{"expired", withToken(expired), "Token expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &fakeAccounts{})
			h := func(ctx context.Context, req any) (any, error) {
				t.Fatal("handler should not be called")
				return nil, nil
			}

			_, err := s.accessTokenInterceptor(tt.ctx, nil, profileInfo, h)
			require.Error(t, err)
			assert.Equal(t, codes.Unauthenticated, status.Code(err))
			assert.Equal(t, tt.message, status.Convert(err).Message())
		})
	}
}

func TestInterceptor_Profile_ValidTokenSetsUserID(t *testing.T) {
	s := newTestServer(t, &fakeAccounts{})

	token, err := newIssuer(t, time.Hour).Issue("user-123")
	require.NoError(t, err)

	var got string
	h := func(ctx context.Context, req any) (any, error) {
		got, _ = UserIDFromContext(ctx)
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(withToken(token), nil, profileInfo, h)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, "user-123", got)
}
