package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/failure"
	"github.com/dmitrijs2005/gophauth/internal/rpc"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      *rpc.AuthServiceClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

var _ Client = (*GRPCClient)(nil)

func NewGophAuthClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewAuthServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	s.accessToken, s.refreshToken = access, refresh
	s.mu.Unlock()
}

func (s *GRPCClient) LoggedIn() bool {
	access, _ := s.tokens()
	return access != ""
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor attaches the access token and, when the server
// reports it invalid, refreshes the session once and retries. Errors leave
// it already mapped.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	access, refresh := s.tokens()

	var trailer metadata.MD
	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, append(opts, grpc.Trailer(&trailer))...)
	if err == nil {
		return nil
	}

	if method == rpc.MethodRefresh || refresh == "" || trailerCode(trailer) != failure.CodeInvalidToken {
		return mapError(err, trailer)
	}

	resp, rerr := s.client.Refresh(ctx, &rpc.RefreshRequest{RefreshToken: refresh})
	if rerr != nil {
		return rerr
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)

	trailer = nil
	err = invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, append(opts, grpc.Trailer(&trailer))...)
	if err != nil {
		return mapError(err, trailer)
	}
	return nil
}

func trailerCode(md metadata.MD) failure.Code {
	if v := md.Get(common.FailureCodeTrailerName); len(v) > 0 {
		return failure.Code(v[0])
	}
	return ""
}

func mapError(err error, trailer metadata.MD) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	if code := trailerCode(trailer); code != "" {
		return &ServerError{Code: code, Message: st.Message()}
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func (s *GRPCClient) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.User, error) {
	return s.client.Register(ctx, req)
}

func (s *GRPCClient) Login(ctx context.Context, email, password, tenantID string) error {
	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Email: email, Password: password, TenantID: tenantID})
	if err != nil {
		return err
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

func (s *GRPCClient) Refresh(ctx context.Context) error {
	_, refresh := s.tokens()
	if refresh == "" {
		return ErrNotLoggedIn
	}
	resp, err := s.client.Refresh(ctx, &rpc.RefreshRequest{RefreshToken: refresh})
	if err != nil {
		return err
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

// Logout ends the session on the server and forgets the tokens, even when
// the server could not be reached.
func (s *GRPCClient) Logout(ctx context.Context) error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}
	_, err := s.client.Logout(ctx, &rpc.Empty{})
	s.setTokens("", "")
	if err != nil && !errors.Is(err, ErrUnauthorized) {
		return err
	}
	return nil
}

func (s *GRPCClient) WhoAmI(ctx context.Context) (*rpc.User, error) {
	return s.client.WhoAmI(ctx, &rpc.Empty{})
}

func (s *GRPCClient) GetUser(ctx context.Context, id string) (*rpc.User, error) {
	return s.client.GetUser(ctx, &rpc.UserRequest{ID: id})
}

func (s *GRPCClient) UpdateUser(ctx context.Context, req *rpc.UpdateUserRequest) (*rpc.User, error) {
	return s.client.UpdateUser(ctx, req)
}

func (s *GRPCClient) ChangePassword(ctx context.Context, id, current, next string) error {
	_, err := s.client.ChangePassword(ctx, &rpc.ChangePasswordRequest{
		ID:              id,
		CurrentPassword: current,
		NewPassword:     next,
	})
	return err
}

func (s *GRPCClient) DeleteUser(ctx context.Context, id string) error {
	_, err := s.client.DeleteUser(ctx, &rpc.UserRequest{ID: id})
	return err
}

func (s *GRPCClient) SetUserLocked(ctx context.Context, id string, locked bool) (*rpc.User, error) {
	return s.client.SetUserLocked(ctx, &rpc.SetUserLockedRequest{ID: id, Locked: locked})
}
