package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "logistics.auth.AccountService"

// Full method names, as seen by interceptors.
const (
	MethodSignUp         = "/" + ServiceName + "/SignUp"
	MethodVerify         = "/" + ServiceName + "/Verify"
	MethodResendCode     = "/" + ServiceName + "/ResendCode"
	MethodSignIn         = "/" + ServiceName + "/SignIn"
	MethodChangePassword = "/" + ServiceName + "/ChangePassword"
	MethodResetPassword  = "/" + ServiceName + "/ResetPassword"
	MethodProfile        = "/" + ServiceName + "/Profile"
	MethodPing           = "/" + ServiceName + "/Ping"
)

// AccountServiceServer is implemented by the gRPC surface.
type AccountServiceServer interface {
	SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error)
	Verify(context.Context, *VerifyRequest) (*TokenResponse, error)
	ResendCode(context.Context, *EmailRequest) (*MessageResponse, error)
	SignIn(context.Context, *SignInRequest) (*TokenResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*MessageResponse, error)
	ResetPassword(context.Context, *EmailRequest) (*MessageResponse, error)
	Profile(context.Context, *ProfileRequest) (*ProfileResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// RegisterAccountServiceServer attaches srv to a grpc.Server.
func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&AccountServiceDesc, srv)
}

// unaryHandler adapts a typed method to grpc's untyped handler signature.
func unaryHandler[Req any, Resp any](fullMethod string, call func(AccountServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AccountServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AccountServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var AccountServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SignUp", Handler: unaryHandler(MethodSignUp, AccountServiceServer.SignUp)},
		{MethodName: "Verify", Handler: unaryHandler(MethodVerify, AccountServiceServer.Verify)},
		{MethodName: "ResendCode", Handler: unaryHandler(MethodResendCode, AccountServiceServer.ResendCode)},
		{MethodName: "SignIn", Handler: unaryHandler(MethodSignIn, AccountServiceServer.SignIn)},
		{MethodName: "ChangePassword", Handler: unaryHandler(MethodChangePassword, AccountServiceServer.ChangePassword)},
		{MethodName: "ResetPassword", Handler: unaryHandler(MethodResetPassword, AccountServiceServer.ResetPassword)},
		{MethodName: "Profile", Handler: unaryHandler(MethodProfile, AccountServiceServer.Profile)},
		{MethodName: "Ping", Handler: unaryHandler(MethodPing, AccountServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "logistics/auth/account.proto",
}

// AccountServiceClient is the client side of the account service.
type AccountServiceClient interface {
	SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SignUpResponse, error)
	Verify(ctx context.Context, in *VerifyRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	ResendCode(ctx context.Context, in *EmailRequest, opts ...grpc.CallOption) (*MessageResponse, error)
	SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*MessageResponse, error)
	ResetPassword(ctx context.Context, in *EmailRequest, opts ...grpc.CallOption) (*MessageResponse, error)
	Profile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type accountServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAccountServiceClient returns a client that always encodes with the JSON codec.
func NewAccountServiceClient(cc grpc.ClientConnInterface) AccountServiceClient {
	return &accountServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *accountServiceClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SignUpResponse, error) {
	return invoke[SignUpResponse](ctx, c.cc, MethodSignUp, in, opts)
}

func (c *accountServiceClient) Verify(ctx context.Context, in *VerifyRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodVerify, in, opts)
}

func (c *accountServiceClient) ResendCode(ctx context.Context, in *EmailRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, MethodResendCode, in, opts)
}

func (c *accountServiceClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodSignIn, in, opts)
}

func (c *accountServiceClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, MethodChangePassword, in, opts)
}

func (c *accountServiceClient) ResetPassword(ctx context.Context, in *EmailRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, MethodResetPassword, in, opts)
}

func (c *accountServiceClient) Profile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodProfile, in, opts)
}

func (c *accountServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}
