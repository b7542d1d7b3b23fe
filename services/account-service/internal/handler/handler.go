// Package handler exposes the account and site operations over HTTP.
package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/payload"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/repository"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/school-site-api/shared/i18n"
	"github.com/vasapolrittideah/school-site-api/shared/middleware"
	"github.com/vasapolrittideah/school-site-api/shared/provider"
)

// Handler serves the account and site endpoints.
type Handler struct {
	account    usecase.AccountDeps
	site       usecase.SiteUsecase
	profiles   repository.ProfileRepository
	translator *i18n.Translator
	validate   *validator.Validate
	logger     *zerolog.Logger
	metrics    *Metrics
	siteName   string
}

// Params holds the dependencies of New.
type Params struct {
	Account  usecase.AccountDeps
	Site     usecase.SiteUsecase
	Metrics  *Metrics
	SiteName string
}

// New creates a Handler. Account.Profiles, Account.Translator and
// Account.Logger are required.
func New(params Params) (*Handler, error) {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := params.Account.Translator.RegisterValidator(validate); err != nil {
		return nil, err
	}

	return &Handler{
		account:    params.Account,
		site:       params.Site,
		profiles:   params.Account.Profiles,
		translator: params.Account.Translator,
		validate:   validate,
		logger:     params.Account.Logger,
		metrics:    params.Metrics,
		siteName:   params.SiteName,
	}, nil
}

// accountFor builds the account usecase on the request's auth handle. On
// failure the error response has already been written.
func (h *Handler) accountFor(w http.ResponseWriter, r *http.Request) (usecase.AccountUsecase, bool) {
	auth, ok := middleware.AuthFromContext(r.Context())
	if !ok {
		h.logger.Error().Msg("request has no auth handle")
		h.fail(w, r, http.StatusInternalServerError, h.translator.Message(i18n.MsgInternal))
		return nil, false
	}
	return usecase.NewAccountUsecase(auth, h.account), true
}

// decode reads the JSON body into v and validates it. On failure the error
// response has already been written.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		h.logger.Debug().Err(err).Msg("failed to decode request body")
		h.fail(w, r, http.StatusBadRequest, h.translator.Message(i18n.MsgInvalidRequestBody))
		return false
	}

	if err := h.validate.Struct(v); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			h.fail(w, r, http.StatusBadRequest, h.translator.Message(i18n.MsgInvalidRequestBody))
			return false
		}
		h.fail(w, r, http.StatusUnprocessableEntity, h.translator.ValidationMessage(err))
		return false
	}

	return true
}

func (h *Handler) ok(w http.ResponseWriter, r *http.Request, resp payload.Response) {
	resp.Success = true
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, payload.Response{Success: false, Error: message})
}

// failWith renders an operation error with the status matching its kind.
func (h *Handler) failWith(w http.ResponseWriter, r *http.Request, err error) {
	var accErr *usecase.AccountError
	if !errors.As(err, &accErr) {
		h.logger.Error().Err(err).Msg("unexpected error")
		h.fail(w, r, http.StatusInternalServerError, h.translator.Message(i18n.MsgInternal))
		return
	}

	status := statusFor(accErr)
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(accErr.Err).Str("message", accErr.Message).Msg("operation failed")
	}

	h.fail(w, r, status, accErr.Message)
}

// rejectAuth is the middleware.ErrorResponder for bearer authentication.
func (h *Handler) rejectAuth(w http.ResponseWriter, r *http.Request, status int, err error) {
	message := h.translator.Message(i18n.MsgUnauthorized)
	if provider.ErrorCode(err) == provider.CodeIDTokenExpired {
		message = h.translator.Message(i18n.MsgSessionExpired)
	}
	h.fail(w, r, status, message)
}

func statusFor(err *usecase.AccountError) int {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrAccountBanned):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrProfileNotFound):
		return http.StatusNotFound
	}

	switch provider.ErrorCode(err) {
	case provider.CodeEmailAlreadyInUse, provider.CodeDifferentCredential:
		return http.StatusConflict
	case provider.CodeWeakPassword, provider.CodeInvalidEmail:
		return http.StatusBadRequest
	case provider.CodeUserNotFound, provider.CodeWrongPassword, provider.CodeInvalidIDToken,
		provider.CodeIDTokenExpired, provider.CodeIDTokenRevoked, provider.CodeNoCurrentUser:
		return http.StatusUnauthorized
	case provider.CodeUserDisabled:
		return http.StatusForbidden
	}

	// Only the signed-out check fails without a cause.
	if err.Err == nil {
		return http.StatusUnauthorized
	}

	return http.StatusInternalServerError
}
