package cli

import (
	"context"
	"fmt"

	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/model"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/usecase"
)

func (app *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(app.reader, "E-posta", app.out)
	if err != nil {
		return err
	}
	displayName, err := GetSimpleText(app.reader, "Ad soyad", app.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(app.out)
	if err != nil {
		return err
	}
	code, err := GetSimpleText(app.reader, "Yönetici kodu (boş bırakılabilir)", app.out)
	if err != nil {
		return err
	}

	result, err := app.account.Register(ctx, usecase.RegisterParams{
		Email:          email,
		Password:       password,
		DisplayName:    displayName,
		EnrollmentCode: code,
	})
	if err != nil {
		return app.report(err)
	}

	// The observer fired before the profile was written.
	app.setState(usecase.AuthState{User: result.User, Authenticated: true})

	fmt.Fprintln(app.out, result.Message)
	return nil
}

func (app *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(app.reader, "E-posta", app.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(app.out)
	if err != nil {
		return err
	}

	result, err := app.account.Login(ctx, usecase.LoginParams{Email: email, Password: password})
	if err != nil {
		return app.report(err)
	}

	fmt.Fprintln(app.out, result.Message)
	return nil
}

func (app *App) Logout(ctx context.Context) error {
	result, err := app.account.Logout(ctx)
	if err != nil {
		return app.report(err)
	}

	fmt.Fprintln(app.out, result.Message)
	return nil
}

func (app *App) WhoAmI(ctx context.Context) error {
	profile, err := app.account.CurrentUser(ctx)
	if err != nil {
		return app.report(err)
	}
	if profile == nil {
		fmt.Fprintln(app.out, "Giriş yapılmadı.")
		return nil
	}

	app.printProfile(profile)
	return nil
}

func (app *App) Users(ctx context.Context) error {
	if err := app.requireAdmin(ctx); err != nil {
		return err
	}

	users, err := app.account.ListAllUsers(ctx)
	if err != nil {
		return app.report(err)
	}

	for _, u := range users {
		app.printProfile(u)
	}
	fmt.Fprintf(app.out, "%d kullanıcı\n", len(users))
	return nil
}

func (app *App) Role(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(app.out, "Kullanım: role <id> <user|moderator|admin>")
		return nil
	}
	if err := app.requireAdmin(ctx); err != nil {
		return err
	}

	result, err := app.account.SetRole(ctx, args[0], model.Role(args[1]))
	if err != nil {
		return app.report(err)
	}

	fmt.Fprintln(app.out, result.Message)
	return nil
}

func (app *App) Ban(ctx context.Context, args []string, banned bool) error {
	if len(args) != 1 {
		fmt.Fprintln(app.out, "Kullanım: ban <id> | unban <id>")
		return nil
	}
	if err := app.requireAdmin(ctx); err != nil {
		return err
	}

	result, err := app.account.SetBanned(ctx, args[0], banned)
	if err != nil {
		return app.report(err)
	}

	fmt.Fprintln(app.out, result.Message)
	return nil
}
