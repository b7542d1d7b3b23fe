package payload

import "github.com/vasapolrittideah/school-site-api/services/account-service/internal/model"

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type NewsletterRequest struct {
	Email string `json:"email"`
}

type SiteResponse struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
}

type ContactMessagesResponse struct {
	Success  bool                    `json:"success"`
	Messages []*model.ContactMessage `json:"messages"`
}
