package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/gophauth/internal/rpc"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/credentials"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
)

func (s *GRPCServer) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.User, error) {
	s.logger.Info(ctx, "Registration request")

	user, err := s.auth.Register(ctx, claimsFromContext(ctx), credentials.RegistrationRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		CompanyName: req.CompanyName,
		Role:        req.Role,
		TenantID:    req.TenantID,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return toRPCUser(user), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.TokenResponse, error) {
	pair, err := s.auth.Login(ctx, credentials.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		TenantID: req.TenantID,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.tokenResponse(pair), nil
}

func (s *GRPCServer) Refresh(ctx context.Context, req *rpc.RefreshRequest) (*rpc.TokenResponse, error) {
	pair, err := s.auth.Refresh(ctx, credentials.RefreshRequest{RefreshToken: req.RefreshToken})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.tokenResponse(pair), nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *rpc.Empty) (*rpc.Empty, error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.auth.Logout(ctx, caller); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) WhoAmI(ctx context.Context, _ *rpc.Empty) (*rpc.User, error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx, caller, caller.UserID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toRPCUser(user), nil
}

func (s *GRPCServer) GetUser(ctx context.Context, req *rpc.UserRequest) (*rpc.User, error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx, caller, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toRPCUser(user), nil
}

func (s *GRPCServer) UpdateUser(ctx context.Context, req *rpc.UpdateUserRequest) (*rpc.User, error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.users.UpdateProfile(ctx, caller, req.ID, credentials.UpdateUserRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CompanyName: req.CompanyName,
		Role:        req.Role,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toRPCUser(user), nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *rpc.ChangePasswordRequest) (*rpc.Empty, error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	err = s.users.ChangePassword(ctx, caller, req.ID, credentials.ChangePasswordRequest{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) DeleteUser(ctx context.Context, req *rpc.UserRequest) (*rpc.Empty, error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.users.Delete(ctx, caller, req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) SetUserLocked(ctx context.Context, req *rpc.SetUserLockedRequest) (*rpc.User, error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.users.SetLocked(ctx, caller, req.ID, req.Locked)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toRPCUser(user), nil
}

func requireCaller(ctx context.Context) (*auth.Claims, error) {
	c := claimsFromContext(ctx)
	if c == nil {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	return c, nil
}

func (s *GRPCServer) tokenResponse(p *services.TokenPair) *rpc.TokenResponse {
	return &rpc.TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.accessTTL,
	}
}

func toRPCUser(u *models.User) *rpc.User {
	return &rpc.User{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		CompanyName: u.CompanyName,
		TenantID:    credentials.TenantFromNullUUID(u.TenantID).String(),
		Role:        u.Role.String(),
		Enabled:     u.Enabled,
		Locked:      u.Locked,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}
