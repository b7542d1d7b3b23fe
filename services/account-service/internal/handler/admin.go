package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/model"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/payload"
	"github.com/vasapolrittideah/school-site-api/shared/i18n"
	"github.com/vasapolrittideah/school-site-api/shared/middleware"
)

// requireAdmin lets through only callers whose profile holds the admin role.
// The account operations behind it do not check roles themselves.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, ok := middleware.AuthFromContext(r.Context())
		if !ok || auth.CurrentUser() == nil {
			h.fail(w, r, http.StatusUnauthorized, h.translator.Message(i18n.MsgUnauthorized))
			return
		}

		profile, err := h.profiles.GetProfile(r.Context(), auth.CurrentUser().UID)
		if err != nil || !profile.IsAdmin() || profile.IsBanned {
			h.logger.Warn().
				Str("uid", auth.CurrentUser().UID).
				Str("route", r.URL.Path).
				Msg("admin route denied")
			h.fail(w, r, http.StatusForbidden, h.translator.Message(i18n.MsgForbidden))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireActive rejects a caller whose profile was banned after their ID
// token was issued.
func (h *Handler) requireActive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, ok := middleware.AuthFromContext(r.Context())
		if ok && auth.CurrentUser() != nil {
			profile, err := h.profiles.GetProfile(r.Context(), auth.CurrentUser().UID)
			if err == nil && profile.IsBanned {
				h.fail(w, r, http.StatusForbidden, h.translator.Message(i18n.MsgAccountBanned))
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	account, ok := h.accountFor(w, r)
	if !ok {
		return
	}

	users, err := account.ListAllUsers(r.Context())
	h.metrics.operation("list_users", err)
	if err != nil {
		h.failWith(w, r, err)
		return
	}

	h.ok(w, r, payload.Response{Users: users})
}

func (h *Handler) SetRole(w http.ResponseWriter, r *http.Request) {
	var req payload.SetRoleRequest
	if !h.decode(w, r, &req) {
		return
	}

	account, ok := h.accountFor(w, r)
	if !ok {
		return
	}

	result, err := account.SetRole(r.Context(), chi.URLParam(r, "id"), model.Role(req.Role))
	h.metrics.operation("set_role", err)
	if err != nil {
		h.failWith(w, r, err)
		return
	}

	h.ok(w, r, payload.Response{Message: result.Message})
}

func (h *Handler) SetBanned(w http.ResponseWriter, r *http.Request) {
	var req payload.SetBannedRequest
	if !h.decode(w, r, &req) {
		return
	}

	account, ok := h.accountFor(w, r)
	if !ok {
		return
	}

	result, err := account.SetBanned(r.Context(), chi.URLParam(r, "id"), *req.Banned)
	h.metrics.operation("set_banned", err)
	if err != nil {
		h.failWith(w, r, err)
		return
	}

	h.ok(w, r, payload.Response{Message: result.Message})
}

func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.site.ListContactMessages(r.Context())
	if err != nil {
		h.failWith(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, payload.ContactMessagesResponse{Success: true, Messages: messages})
}
