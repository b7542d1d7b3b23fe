// Package cli is an interactive operator console for the account layer. It
// keeps one provider auth handle for the whole session.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/model"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/repository"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/school-site-api/shared/i18n"
	"github.com/vasapolrittideah/school-site-api/shared/provider"
)

var errForbidden = errors.New("admin role required")

// App runs account commands on a single auth handle.
type App struct {
	account    usecase.AccountUsecase
	auth       provider.Auth
	profiles   repository.ProfileRepository
	translator *i18n.Translator
	logger     *zerolog.Logger
	reader     *bufio.Reader
	out        io.Writer

	mu    sync.Mutex
	state usecase.AuthState
}

// Params holds the dependencies of NewApp.
type Params struct {
	Auth    provider.Auth
	Account usecase.AccountDeps
	In      io.Reader
	Out     io.Writer
}

func NewApp(params Params) *App {
	logger := params.Account.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &App{
		account:    usecase.NewAccountUsecase(params.Auth, params.Account),
		auth:       params.Auth,
		profiles:   params.Account.Profiles,
		translator: params.Account.Translator,
		logger:     logger,
		reader:     bufio.NewReader(params.In),
		out:        params.Out,
	}
}

// Run starts the REPL and returns when input ends or the operator exits.
func (app *App) Run(ctx context.Context) {
	unsubscribe := usecase.ObserveAuthState(ctx, app.auth, app.profiles, app.logger, app.setState)
	defer unsubscribe()

	runREPL(ctx, app, app.status, bufio.NewScanner(app.reader))
}

func (app *App) setState(state usecase.AuthState) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.state = state
}

func (app *App) status() string {
	app.mu.Lock()
	defer app.mu.Unlock()

	if !app.state.Authenticated {
		return "misafir"
	}
	return fmt.Sprintf("%s (%s)", app.state.User.Email, app.state.User.Role)
}

func (app *App) isSignedIn() bool {
	return app.auth.CurrentUser() != nil
}

// report prints the localized message of a failed command.
func (app *App) report(err error) error {
	fmt.Fprintln(app.out, "Hata:", err.Error())
	return err
}

// requireAdmin reports errForbidden unless the signed-in profile is an
// unbanned admin.
func (app *App) requireAdmin(ctx context.Context) error {
	profile, err := app.account.CurrentUser(ctx)
	if err != nil {
		return app.report(err)
	}
	if profile == nil {
		fmt.Fprintln(app.out, "Hata:", app.translator.Message(i18n.MsgUnauthorized))
		return errForbidden
	}
	if !profile.IsAdmin() || profile.IsBanned {
		fmt.Fprintln(app.out, "Hata:", app.translator.Message(i18n.MsgForbidden))
		return errForbidden
	}
	return nil
}

func (app *App) printProfile(p *model.UserProfile) {
	fmt.Fprintf(app.out, "%s\t%s\t%s\t%s", p.ID, p.Email, p.DisplayName, p.Role)
	if p.IsBanned {
		fmt.Fprint(app.out, "\tengelli")
	}
	fmt.Fprintln(app.out)
}
