package handler

import (
	"net/http"

	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/payload"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/school-site-api/shared/i18n"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	account, ok := h.accountFor(w, r)
	if !ok {
		return
	}

	result, err := account.Register(r.Context(), usecase.RegisterParams{
		Email:          req.Email,
		Password:       req.Password,
		DisplayName:    req.DisplayName,
		EnrollmentCode: req.EnrollmentCode,
	})
	h.metrics.operation("register", err)
	if err != nil {
		h.failWith(w, r, err)
		return
	}

	h.ok(w, r, payload.Response{Message: result.Message, User: result.User, IDToken: result.IDToken})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	account, ok := h.accountFor(w, r)
	if !ok {
		return
	}

	result, err := account.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	h.metrics.operation("login", err)
	if err != nil {
		h.failWith(w, r, err)
		return
	}

	h.ok(w, r, payload.Response{Message: result.Message, User: result.User, IDToken: result.IDToken})
}

func (h *Handler) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	var req payload.GoogleLoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	account, ok := h.accountFor(w, r)
	if !ok {
		return
	}

	result, err := account.LoginWithGoogle(r.Context(), req.IDToken)
	h.metrics.operation("login_google", err)
	if err != nil {
		h.failWith(w, r, err)
		return
	}

	h.ok(w, r, payload.Response{Message: result.Message, User: result.User, IDToken: result.IDToken})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	account, ok := h.accountFor(w, r)
	if !ok {
		return
	}

	result, err := account.Logout(r.Context())
	h.metrics.operation("logout", err)
	if err != nil {
		h.failWith(w, r, err)
		return
	}

	h.ok(w, r, payload.Response{Message: result.Message})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := h.accountFor(w, r)
	if !ok {
		return
	}

	profile, err := account.CurrentUser(r.Context())
	if err != nil {
		h.failWith(w, r, err)
		return
	}
	if profile == nil {
		h.fail(w, r, http.StatusNotFound, h.translator.Message(i18n.MsgProfileNotFound))
		return
	}

	h.ok(w, r, payload.Response{User: profile})
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateDisplayNameRequest
	if !h.decode(w, r, &req) {
		return
	}

	account, ok := h.accountFor(w, r)
	if !ok {
		return
	}

	result, err := account.UpdateDisplayName(r.Context(), req.DisplayName)
	h.metrics.operation("update_display_name", err)
	if err != nil {
		h.failWith(w, r, err)
		return
	}

	h.ok(w, r, payload.Response{Message: result.Message, User: result.User})
}
