package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/rpc"
)

// changePassword changes the caller's own password, or with an id, resets
// someone else's (admins only; no current password needed then).
func (a *App) changePassword(ctx context.Context, args []string) {
	var id string
	var current []byte
	var err error

	if len(args) > 0 {
		id = args[0]
	} else {
		me, err := a.currentUser(ctx)
		if err != nil {
			a.report(err)
			return
		}
		id = me.ID
		if current, err = GetPassword("-Enter current password", a.out); err != nil {
			a.report(err)
			return
		}
		defer common.WipeByteArray(current)
	}

	next, err := GetPassword("-Enter new password", a.out)
	if err != nil {
		a.report(err)
		return
	}
	defer common.WipeByteArray(next)

	err = a.call(ctx, func(ctx context.Context) error {
		return a.client.ChangePassword(ctx, id, string(current), string(next))
	})
	if err != nil {
		a.report(err)
		return
	}
	a.printf("Password changed; all sessions of the account were ended\n")
}

func (a *App) currentUser(ctx context.Context) (*rpc.User, error) {
	var user *rpc.User
	err := a.call(ctx, func(ctx context.Context) (err error) {
		user, err = a.client.WhoAmI(ctx)
		return err
	})
	return user, err
}

func (a *App) getUser(ctx context.Context, id string) {
	var user *rpc.User
	err := a.call(ctx, func(ctx context.Context) (err error) {
		user, err = a.client.GetUser(ctx, id)
		return err
	})
	if err != nil {
		a.report(err)
		return
	}
	a.printUser(user)
}

func (a *App) rename(ctx context.Context, id string) {
	first, err := GetSimpleText(a.reader, "-Enter first name (empty to keep)", a.out)
	if err != nil {
		a.report(err)
		return
	}
	last, err := GetSimpleText(a.reader, "-Enter last name (empty to keep)", a.out)
	if err != nil {
		a.report(err)
		return
	}

	req := &rpc.UpdateUserRequest{ID: id}
	if first != "" {
		req.FirstName = &first
	}
	if last != "" {
		req.LastName = &last
	}
	a.update(ctx, req)
}

func (a *App) setRole(ctx context.Context, id, role string) {
	role = strings.ToUpper(role)
	if !strings.HasPrefix(role, "ROLE_") {
		role = "ROLE_" + role
	}
	a.update(ctx, &rpc.UpdateUserRequest{ID: id, Role: &role})
}

func (a *App) update(ctx context.Context, req *rpc.UpdateUserRequest) {
	var user *rpc.User
	err := a.call(ctx, func(ctx context.Context) (err error) {
		user, err = a.client.UpdateUser(ctx, req)
		return err
	})
	if err != nil {
		a.report(err)
		return
	}
	a.printUser(user)
}

func (a *App) setLocked(ctx context.Context, id string, locked bool) {
	var user *rpc.User
	err := a.call(ctx, func(ctx context.Context) (err error) {
		user, err = a.client.SetUserLocked(ctx, id, locked)
		return err
	})
	if err != nil {
		a.report(err)
		return
	}
	a.printUser(user)
}

func (a *App) deleteUser(ctx context.Context, id string) {
	err := a.call(ctx, func(ctx context.Context) error {
		return a.client.DeleteUser(ctx, id)
	})
	if err != nil {
		a.report(err)
		return
	}
	a.printf("Deleted %s\n", id)
}
