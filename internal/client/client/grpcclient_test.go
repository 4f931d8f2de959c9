package client

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/failure"
	"github.com/dmitrijs2005/gophauth/internal/rpc"
)

// fakeServer accepts exactly one access token at a time.
type fakeServer struct {
	mu        sync.Mutex
	valid     string
	refresh   string
	refreshes int
	loggedOut bool
}

func reject(ctx context.Context, f *failure.Failure, code codes.Code) error {
	_ = grpc.SetTrailer(ctx, metadata.Pairs(common.FailureCodeTrailerName, string(f.Code)))
	return status.Error(code, f.Error())
}

func (f *fakeServer) authorize(ctx context.Context) error {
	md, _ := metadata.FromIncomingContext(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	if v := md.Get(common.AccessTokenHeaderName); len(v) == 0 || v[0] != f.valid {
		return reject(ctx, failure.InvalidToken, codes.Unauthenticated)
	}
	return nil
}

func (f *fakeServer) Register(_ context.Context, req *rpc.RegisterRequest) (*rpc.User, error) {
	return &rpc.User{ID: "u-1", Email: req.Email, Role: "ROLE_USER"}, nil
}

func (f *fakeServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.TokenResponse, error) {
	if req.Password != "Str0ng!Pass" {
		return nil, reject(ctx, failure.InvalidCredentials, codes.Unauthenticated)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.valid, f.refresh = "access-1", "refresh-1"
	return &rpc.TokenResponse{AccessToken: f.valid, RefreshToken: f.refresh}, nil
}

func (f *fakeServer) Refresh(ctx context.Context, req *rpc.RefreshRequest) (*rpc.TokenResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.RefreshToken != f.refresh {
		return nil, reject(ctx, failure.RefreshTokenNotFound, codes.Unauthenticated)
	}
	f.refreshes++
	f.valid = "access-refreshed"
	return &rpc.TokenResponse{AccessToken: f.valid, RefreshToken: f.refresh}, nil
}

func (f *fakeServer) Logout(ctx context.Context, _ *rpc.Empty) (*rpc.Empty, error) {
	if err := f.authorize(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.loggedOut = true
	f.refresh = ""
	f.mu.Unlock()
	return &rpc.Empty{}, nil
}

func (f *fakeServer) WhoAmI(ctx context.Context, _ *rpc.Empty) (*rpc.User, error) {
	if err := f.authorize(ctx); err != nil {
		return nil, err
	}
	return &rpc.User{ID: "u-1", Email: "alice@example.com"}, nil
}

func (f *fakeServer) GetUser(ctx context.Context, req *rpc.UserRequest) (*rpc.User, error) {
	if err := f.authorize(ctx); err != nil {
		return nil, err
	}
	return nil, reject(ctx, failure.IDNotExists, codes.NotFound)
}

func (f *fakeServer) UpdateUser(ctx context.Context, req *rpc.UpdateUserRequest) (*rpc.User, error) {
	return nil, status.Error(codes.Unimplemented, "not here")
}

func (f *fakeServer) ChangePassword(ctx context.Context, req *rpc.ChangePasswordRequest) (*rpc.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "not here")
}

func (f *fakeServer) DeleteUser(ctx context.Context, req *rpc.UserRequest) (*rpc.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "not here")
}

func (f *fakeServer) SetUserLocked(ctx context.Context, req *rpc.SetUserLockedRequest) (*rpc.User, error) {
	return nil, status.Error(codes.Unimplemented, "not here")
}

func (f *fakeServer) snapshot() (refreshes int, loggedOut bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshes, f.loggedOut
}

func startFake(t *testing.T) (*GRPCClient, *fakeServer) {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	fake := &fakeServer{}
	srv := grpc.NewServer()
	rpc.RegisterAuthServiceServer(srv, fake)
	go func() { _ = srv.Serve(lis) }()

	c, err := NewGophAuthClient(lis.Addr().String())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
		srv.Stop()
	})
	return c, fake
}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestGRPCClient_LoginAndWhoAmI(t *testing.T) {
	c, _ := startFake(t)
	ctx := testCtx(t)

	assert.False(t, c.LoggedIn())
	require.NoError(t, c.Login(ctx, "alice@example.com", "Str0ng!Pass", ""))
	assert.True(t, c.LoggedIn())

	me, err := c.WhoAmI(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Email)
}

func TestGRPCClient_LoginFailureCarriesCode(t *testing.T) {
	c, _ := startFake(t)

	err := c.Login(testCtx(t), "alice@example.com", "wrong", "")

	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, failure.CodeInvalidCredentials, se.Code)
	assert.Equal(t, "Invalid email or password", se.Message)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, err, failure.InvalidCredentials)
	assert.False(t, c.LoggedIn())
}

func TestGRPCClient_RefreshesExpiredAccessToken(t *testing.T) {
	c, fake := startFake(t)
	ctx := testCtx(t)
	require.NoError(t, c.Login(ctx, "alice@example.com", "Str0ng!Pass", ""))

	// the server rotates its signing state; the held token is now stale
	fake.mu.Lock()
	fake.valid = "something-else"
	fake.mu.Unlock()

	me, err := c.WhoAmI(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-1", me.ID)
	refreshes, _ := fake.snapshot()
	assert.Equal(t, 1, refreshes)

	access, _ := c.tokens()
	assert.Equal(t, "access-refreshed", access)
}

func TestGRPCClient_RefreshFailureIsReturned(t *testing.T) {
	c, fake := startFake(t)
	ctx := testCtx(t)
	require.NoError(t, c.Login(ctx, "alice@example.com", "Str0ng!Pass", ""))

	fake.mu.Lock()
	fake.valid = "something-else"
	fake.refresh = "revoked"
	fake.mu.Unlock()

	_, err := c.WhoAmI(ctx)
	assert.ErrorIs(t, err, failure.RefreshTokenNotFound)
}

func TestGRPCClient_NonTokenFailuresAreNotRetried(t *testing.T) {
	c, fake := startFake(t)
	ctx := testCtx(t)
	require.NoError(t, c.Login(ctx, "alice@example.com", "Str0ng!Pass", ""))

	_, err := c.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, failure.IDNotExists)
	refreshes, _ := fake.snapshot()
	assert.Zero(t, refreshes)

	_, err = c.UpdateUser(ctx, &rpc.UpdateUserRequest{ID: "x"})
	assert.ErrorContains(t, err, "rpc error")
}

func TestGRPCClient_Logout(t *testing.T) {
	c, fake := startFake(t)
	ctx := testCtx(t)

	assert.ErrorIs(t, c.Logout(ctx), ErrNotLoggedIn)
	assert.ErrorIs(t, c.Refresh(ctx), ErrNotLoggedIn)

	require.NoError(t, c.Login(ctx, "alice@example.com", "Str0ng!Pass", ""))
	require.NoError(t, c.Logout(ctx))
	_, loggedOut := fake.snapshot()
	assert.True(t, loggedOut)
	assert.False(t, c.LoggedIn())
}

func TestMapError(t *testing.T) {
	assert.ErrorIs(t, mapError(status.Error(codes.Unavailable, "down"), nil), ErrUnavailable)
	assert.ErrorIs(t, mapError(status.Error(codes.DeadlineExceeded, "slow"), nil), ErrUnavailable)
	assert.ErrorIs(t, mapError(status.Error(codes.Unauthenticated, "missing token"), nil), ErrUnauthorized)
	assert.ErrorIs(t, mapError(status.Error(codes.Unavailable, "down"), nil), common.ErrorUnavailable)
	assert.ErrorIs(t, mapError(status.Error(codes.PermissionDenied, "no"), nil), common.ErrorUnauthorized)

	err := mapError(status.Error(codes.AlreadyExists, "dup"),
		metadata.Pairs(common.FailureCodeTrailerName, string(failure.CodeEmailAlreadyExists)))
	assert.ErrorIs(t, err, failure.EmailAlreadyExists)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}
