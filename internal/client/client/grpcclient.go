package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/api"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.AccountServiceClient

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient creates a client for endpointURL. Extra dial options are
// appended after the defaults.
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewAccountServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	_, err := s.client.Ping(ctx, &api.PingRequest{})
	return s.mapError(err)
}

func (s *GRPCClient) SignUp(ctx context.Context, req *api.SignUpRequest) (*api.SignUpResponse, error) {
	resp, err := s.client.SignUp(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// Verify activates the account and keeps the returned session token.
func (s *GRPCClient) Verify(ctx context.Context, email, code string) error {
	resp, err := s.client.Verify(ctx, &api.VerifyRequest{Email: email, Code: code})
	if err != nil {
		return s.mapError(err)
	}
	s.setToken(resp.Token)
	return nil
}

func (s *GRPCClient) ResendCode(ctx context.Context, email string) error {
	_, err := s.client.ResendCode(ctx, &api.EmailRequest{Email: email})
	return s.mapError(err)
}

// SignIn keeps the returned session token for later calls.
func (s *GRPCClient) SignIn(ctx context.Context, email, password string) error {
	resp, err := s.client.SignIn(ctx, &api.SignInRequest{Email: email, Password: password})
	if err != nil {
		return s.mapError(err)
	}
	s.setToken(resp.Token)
	return nil
}

func (s *GRPCClient) ChangePassword(ctx context.Context, email, current, next string) error {
	_, err := s.client.ChangePassword(ctx, &api.ChangePasswordRequest{Email: email, Password: current, NewPassword: next})
	return s.mapError(err)
}

func (s *GRPCClient) ResetPassword(ctx context.Context, email string) error {
	_, err := s.client.ResetPassword(ctx, &api.EmailRequest{Email: email})
	return s.mapError(err)
}

func (s *GRPCClient) Profile(ctx context.Context) (*api.ProfileResponse, error) {
	if !s.SignedIn() {
		return nil, ErrNotSignedIn
	}
	resp, err := s.client.Profile(ctx, &api.ProfileRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) SignedIn() bool { return s.token() != "" }

func (s *GRPCClient) SignOut() { s.setToken("") }

// mapError converts a gRPC status into the common sentinel named by its
// message. Errors that are not statuses pass through unchanged.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.Canceled:
		return context.Canceled
	}

	return common.FromMessage(st.Message())
}
