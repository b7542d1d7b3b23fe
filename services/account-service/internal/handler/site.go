package handler

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/payload"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/usecase"
)

func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req payload.ContactRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.site.SubmitContact(r.Context(), usecase.ContactParams{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	h.metrics.operation("submit_contact", err)
	if err != nil {
		h.failWith(w, r, err)
		return
	}

	h.ok(w, r, payload.Response{Message: result.Message})
}

func (h *Handler) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var req payload.NewsletterRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.site.SubscribeNewsletter(r.Context(), req.Email)
	h.metrics.operation("subscribe_newsletter", err)
	if err != nil {
		h.failWith(w, r, err)
		return
	}

	h.ok(w, r, payload.Response{Message: result.Message})
}

func (h *Handler) Site(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, payload.SiteResponse{Success: true, Name: h.siteName})
}
