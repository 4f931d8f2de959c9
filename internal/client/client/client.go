package client

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/rpc"
)

type Client interface {
	Close() error
	LoggedIn() bool

	Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.User, error)
	Login(ctx context.Context, email, password, tenantID string) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error

	WhoAmI(ctx context.Context) (*rpc.User, error)
	GetUser(ctx context.Context, id string) (*rpc.User, error)
	UpdateUser(ctx context.Context, req *rpc.UpdateUserRequest) (*rpc.User, error)
	ChangePassword(ctx context.Context, id, current, next string) error
	DeleteUser(ctx context.Context, id string) error
	SetUserLocked(ctx context.Context, id string, locked bool) (*rpc.User, error)
}
