package cli

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/rpc"
)

func (a *App) register(ctx context.Context) {
	req := &rpc.RegisterRequest{TenantID: a.config.TenantID}

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"-Enter first name", &req.FirstName},
		{"-Enter last name", &req.LastName},
		{"-Enter email", &req.Email},
		{"-Enter company name (optional)", &req.CompanyName},
	}
	for _, f := range fields {
		v, err := GetSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			a.report(err)
			return
		}
		*f.dst = v
	}

	password, err := GetPassword("-Enter password", a.out)
	if err != nil {
		a.report(err)
		return
	}
	defer common.WipeByteArray(password)
	req.Password = string(password)

	var user *rpc.User
	err = a.call(ctx, func(ctx context.Context) error {
		user, err = a.client.Register(ctx, req)
		return err
	})
	if err != nil {
		a.report(err)
		return
	}

	a.printf("Registered %s (id %s)\n", user.Email, user.ID)
}

func (a *App) login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "-Enter email", a.out)
	if err != nil {
		a.report(err)
		return
	}

	password, err := GetPassword("-Enter password", a.out)
	if err != nil {
		a.report(err)
		return
	}
	defer common.WipeByteArray(password)

	err = a.call(ctx, func(ctx context.Context) error {
		return a.client.Login(ctx, email, string(password), a.config.TenantID)
	})
	if err != nil {
		a.report(err)
		return
	}

	a.email = email
	a.printf("Login successful\n")
}

func (a *App) whoAmI(ctx context.Context) {
	var user *rpc.User
	err := a.call(ctx, func(ctx context.Context) (err error) {
		user, err = a.client.WhoAmI(ctx)
		return err
	})
	if err != nil {
		a.report(err)
		return
	}
	a.printUser(user)
}

func (a *App) refresh(ctx context.Context) {
	if err := a.call(ctx, a.client.Refresh); err != nil {
		a.report(err)
		return
	}
	a.printf("Session refreshed\n")
}

func (a *App) logout(ctx context.Context) {
	if err := a.call(ctx, a.client.Logout); err != nil {
		a.report(err)
		return
	}
	a.email = ""
	a.printf("Logged out\n")
}
