package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "gophauth.v1.AuthService"

// Full method names, as seen by interceptors.
const (
	MethodRegister       = "/" + ServiceName + "/Register"
	MethodLogin          = "/" + ServiceName + "/Login"
	MethodRefresh        = "/" + ServiceName + "/Refresh"
	MethodLogout         = "/" + ServiceName + "/Logout"
	MethodWhoAmI         = "/" + ServiceName + "/WhoAmI"
	MethodGetUser        = "/" + ServiceName + "/GetUser"
	MethodUpdateUser     = "/" + ServiceName + "/UpdateUser"
	MethodChangePassword = "/" + ServiceName + "/ChangePassword"
	MethodDeleteUser     = "/" + ServiceName + "/DeleteUser"
	MethodSetUserLocked  = "/" + ServiceName + "/SetUserLocked"
)

// AuthServiceServer is the server API of gophauth.v1.AuthService.
type AuthServiceServer interface {
	Register(context.Context, *RegisterRequest) (*User, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	Refresh(context.Context, *RefreshRequest) (*TokenResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	WhoAmI(context.Context, *Empty) (*User, error)
	GetUser(context.Context, *UserRequest) (*User, error)
	UpdateUser(context.Context, *UpdateUserRequest) (*User, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*Empty, error)
	DeleteUser(context.Context, *UserRequest) (*Empty, error)
	SetUserLocked(context.Context, *SetUserLockedRequest) (*User, error)
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

// AuthServiceDesc describes gophauth.v1.AuthService for grpc.Server.
var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(MethodRegister, AuthServiceServer.Register)},
		{MethodName: "Login", Handler: unary(MethodLogin, AuthServiceServer.Login)},
		{MethodName: "Refresh", Handler: unary(MethodRefresh, AuthServiceServer.Refresh)},
		{MethodName: "Logout", Handler: unary(MethodLogout, AuthServiceServer.Logout)},
		{MethodName: "WhoAmI", Handler: unary(MethodWhoAmI, AuthServiceServer.WhoAmI)},
		{MethodName: "GetUser", Handler: unary(MethodGetUser, AuthServiceServer.GetUser)},
		{MethodName: "UpdateUser", Handler: unary(MethodUpdateUser, AuthServiceServer.UpdateUser)},
		{MethodName: "ChangePassword", Handler: unary(MethodChangePassword, AuthServiceServer.ChangePassword)},
		{MethodName: "DeleteUser", Handler: unary(MethodDeleteUser, AuthServiceServer.DeleteUser)},
		{MethodName: "SetUserLocked", Handler: unary(MethodSetUserLocked, AuthServiceServer.SetUserLocked)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophauth/v1/auth.json",
}

// unary adapts a typed server method to grpc.MethodHandler, running it
// through the server's interceptor chain.
func unary[Req, Resp any](fullMethod string, call func(AuthServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AuthServiceClient is the client API of gophauth.v1.AuthService.
type AuthServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthServiceClient(cc grpc.ClientConnInterface) *AuthServiceClient {
	return &AuthServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, MethodRegister, in, opts)
}

func (c *AuthServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *AuthServiceClient) Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodRefresh, in, opts)
}

func (c *AuthServiceClient) Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodLogout, in, opts)
}

func (c *AuthServiceClient) WhoAmI(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, MethodWhoAmI, in, opts)
}

func (c *AuthServiceClient) GetUser(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, MethodGetUser, in, opts)
}

func (c *AuthServiceClient) UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, MethodUpdateUser, in, opts)
}

func (c *AuthServiceClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodChangePassword, in, opts)
}

func (c *AuthServiceClient) DeleteUser(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodDeleteUser, in, opts)
}

func (c *AuthServiceClient) SetUserLocked(ctx context.Context, in *SetUserLockedRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, MethodSetUserLocked, in, opts)
}
