package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/failure"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/credentials"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/roles"
)

// UserService administers accounts on behalf of an authenticated caller.
//
// Targets outside the caller's tenant are reported as failure.IDNotExists
// unless the caller is a super admin, so tenants cannot probe each other.
type UserService struct {
	repomanager repomanager.RepositoryManager
	tokens      *RefreshTokenStore
	hasher      auth.Hasher
	log         logging.Logger
}

func NewUserService(m repomanager.RepositoryManager, tokens *RefreshTokenStore, hasher auth.Hasher, log logging.Logger) *UserService {
	return &UserService{
		repomanager: m,
		tokens:      tokens,
		hasher:      hasher,
		log:         log.With("module", "users"),
	}
}

// Get returns the account with the given id. Reading anyone but oneself
// requires ROLE_ADMIN.
func (s *UserService) Get(ctx context.Context, caller *auth.Claims, id string) (*models.User, error) {
	var user *models.User
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		target, err := s.resolve(ctx, tx, caller, id)
		if err != nil {
			return err
		}
		if target.ID != caller.UserID && !caller.Role.AtLeast(roles.Admin) {
			return failure.InsufficientRole
		}
		user = target
		return nil
	})
	if err != nil {
		return nil, internalError(ctx, s.log, "get user failed", err)
	}
	return user, nil
}

// UpdateProfile applies a partial update. Name changes go through the
// privileged operation gate, a role change through the role assignment gate.
func (s *UserService) UpdateProfile(ctx context.Context, caller *auth.Claims, id string, req credentials.UpdateUserRequest) (*models.User, error) {
	v, err := req.Validate()
	if err != nil {
		return nil, err
	}

	var user *models.User
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		target, err := s.resolve(ctx, tx, caller, id)
		if err != nil {
			return err
		}
		self := target.ID == caller.UserID

		if err := roles.RequirePrivilegedOperation(caller.Role, self, target.Role); err != nil {
			return err
		}
		if v.Role != nil && *v.Role != target.Role {
			if err := roles.RequireRoleAssignment(caller.Role, self, target.Role, *v.Role); err != nil {
				return err
			}
			target.Role = *v.Role
		}

		if v.FirstName != nil {
			target.FirstName = v.FirstName.String()
		}
		if v.LastName != nil {
			target.LastName = v.LastName.String()
		}
		if v.CompanyName != nil {
			name := v.CompanyName.String()
			target.CompanyName = &name
		}

		if !v.IsEmpty() {
			if err := s.repomanager.Users(tx).Update(ctx, target); err != nil {
				return mapUserErr(err)
			}
		}
		user = target
		return nil
	})
	if err != nil {
		return nil, internalError(ctx, s.log, "update user failed", err)
	}
	return user, nil
}

// ChangePassword sets a new password and ends every session of the target.
// Changing one's own password requires the current one.
func (s *UserService) ChangePassword(ctx context.Context, caller *auth.Claims, id string, req credentials.ChangePasswordRequest) error {
	v, err := req.Validate()
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(v.New.Value())
	if err != nil {
		return internalError(ctx, s.log, "hash password", err)
	}

	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		target, err := s.resolve(ctx, tx, caller, id)
		if err != nil {
			return err
		}
		self := target.ID == caller.UserID

		if err := roles.RequirePrivilegedOperation(caller.Role, self, target.Role); err != nil {
			return err
		}
		if self {
			ok, err := s.hasher.Verify(v.Current, target.PasswordHash)
			if err != nil {
				s.log.Error(ctx, "stored password hash unusable", "user_id", target.ID, "error", err)
				return failure.InvalidCredentials
			}
			if !ok {
				return failure.InvalidCredentials
			}
		}

		target.PasswordHash = hash
		if err := s.repomanager.Users(tx).Update(ctx, target); err != nil {
			return mapUserErr(err)
		}
		return s.tokens.InvalidateAll(ctx, tx, target.ID)
	})
	if err != nil {
		return internalError(ctx, s.log, "change password failed", err)
	}

	s.log.Info(ctx, "password changed", "user_id", id, "by", caller.UserID)
	return nil
}

// Delete removes an account. Only a caller ranked above the target may do
// it, so nobody deletes themselves.
func (s *UserService) Delete(ctx context.Context, caller *auth.Claims, id string) error {
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		target, err := s.resolve(ctx, tx, caller, id)
		if err != nil {
			return err
		}
		if err := roles.RequirePrivilegedOperation(caller.Role, false, target.Role); err != nil {
			return err
		}
		return mapUserErr(s.repomanager.Users(tx).Delete(ctx, target.ID))
	})
	if err != nil {
		return internalError(ctx, s.log, "delete user failed", err)
	}

	s.log.Info(ctx, "user deleted", "user_id", id, "by", caller.UserID)
	return nil
}

// SetLocked suspends or reinstates an account. Nobody can lock themselves,
// and locking ends every session of the target.
func (s *UserService) SetLocked(ctx context.Context, caller *auth.Claims, id string, locked bool) (*models.User, error) {
	var user *models.User
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		target, err := s.resolve(ctx, tx, caller, id)
		if err != nil {
			return err
		}
		if err := roles.RequirePrivilegedOperation(caller.Role, false, target.Role); err != nil {
			return err
		}

		users := s.repomanager.Users(tx)
		if err := users.SetLocked(ctx, target.ID, locked); err != nil {
			return mapUserErr(err)
		}
		if locked {
			if err := s.tokens.InvalidateAll(ctx, tx, target.ID); err != nil {
				return err
			}
		}

		user, err = users.GetByID(ctx, target.ID)
		return mapUserErr(err)
	})
	if err != nil {
		return nil, internalError(ctx, s.log, "set locked failed", err)
	}

	s.log.Info(ctx, "user lock changed", "user_id", id, "locked", locked, "by", caller.UserID)
	return user, nil
}

// resolve loads the target and hides accounts of other tenants from
// everyone below super admin.
func (s *UserService) resolve(ctx context.Context, tx dbx.DBTX, caller *auth.Claims, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, failure.IDNotExists
	}

	user, err := s.repomanager.Users(tx).GetByID(ctx, id)
	if err != nil {
		return nil, mapUserErr(err)
	}

	if caller.Role != roles.SuperAdmin &&
		credentials.TenantFromNullUUID(user.TenantID).String() != caller.TenantID {
		return nil, failure.IDNotExists
	}
	return user, nil
}

func mapUserErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return failure.IDNotExists
	}
	return fmt.Errorf("users: %w", err)
}
