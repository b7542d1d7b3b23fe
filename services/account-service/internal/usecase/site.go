package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/model"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/repository"
	"github.com/vasapolrittideah/school-site-api/shared/i18n"
	"github.com/vasapolrittideah/school-site-api/shared/mailer"
	"github.com/vasapolrittideah/school-site-api/shared/provider"
)

// SiteUsecase handles the public forms of the school site.
type SiteUsecase interface {
	SubmitContact(ctx context.Context, params ContactParams) (*Result, error)
	SubscribeNewsletter(ctx context.Context, email string) (*Result, error)
	ListContactMessages(ctx context.Context) ([]*model.ContactMessage, error)
}

// ContactParams defines the fields of the contact form.
type ContactParams struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type siteUsecase struct {
	contacts   repository.ContactRepository
	newsletter repository.NewsletterRepository
	sender     mailer.Sender
	recipient  string
	siteName   string
	translator *i18n.Translator
	logger     *zerolog.Logger
	validate   *validator.Validate
	now        func() time.Time
}

// SiteDeps holds the dependencies of NewSiteUsecase.
type SiteDeps struct {
	Contacts   repository.ContactRepository
	Newsletter repository.NewsletterRepository
	Sender     mailer.Sender
	Recipient  string
	SiteName   string
	Translator *i18n.Translator
	Logger     *zerolog.Logger
}

func NewSiteUsecase(deps SiteDeps) SiteUsecase {
	sender := deps.Sender
	if sender == nil {
		sender = mailer.Discard{}
	}
	logger := deps.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &siteUsecase{
		contacts:   deps.Contacts,
		newsletter: deps.Newsletter,
		sender:     sender,
		recipient:  deps.Recipient,
		siteName:   deps.SiteName,
		translator: deps.Translator,
		logger:     logger,
		validate:   validator.New(),
		now:        time.Now,
	}
}

// SubmitContact stores the message and mails it to the school. A delivery
// failure is logged and leaves the stored message undelivered; it does not
// fail the submission.
func (u *siteUsecase) SubmitContact(ctx context.Context, params ContactParams) (*Result, error) {
	msg := &model.ContactMessage{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(params.Name),
		Email:     provider.NormalizeEmail(params.Email),
		Subject:   strings.TrimSpace(params.Subject),
		Message:   strings.TrimSpace(params.Message),
		CreatedAt: u.now().UTC().Truncate(time.Millisecond),
	}

	if msg.Name == "" || msg.Email == "" || msg.Subject == "" || msg.Message == "" {
		return nil, validationError(u.translator, i18n.MsgAllFieldsRequired)
	}
	if err := u.validate.Var(msg.Email, "email"); err != nil {
		return nil, u.invalidEmail()
	}

	if err := u.contacts.CreateMessage(ctx, msg); err != nil {
		return nil, providerError(u.translator, err)
	}

	if err := u.deliver(msg); err != nil {
		u.logger.Error().Err(err).Str("message_id", msg.ID).Msg("failed to deliver contact message")
	} else if err := u.contacts.MarkDelivered(ctx, msg.ID); err != nil {
		u.logger.Error().Err(err).Str("message_id", msg.ID).Msg("failed to mark contact message delivered")
	}

	return &Result{Message: u.translator.Message(i18n.MsgContactSent)}, nil
}

func (u *siteUsecase) SubscribeNewsletter(ctx context.Context, email string) (*Result, error) {
	email = provider.NormalizeEmail(email)
	if email == "" {
		return nil, validationError(u.translator, i18n.MsgAllFieldsRequired)
	}
	if err := u.validate.Var(email, "email"); err != nil {
		return nil, u.invalidEmail()
	}

	created, err := u.newsletter.Subscribe(ctx, &model.NewsletterSubscription{
		Email:        email,
		SubscribedAt: u.now().UTC().Truncate(time.Millisecond),
	})
	if err != nil {
		return nil, providerError(u.translator, err)
	}

	if created {
		u.logger.Info().Msg("newsletter subscription created")
	}

	return &Result{Message: u.translator.Message(i18n.MsgNewsletterSubscribed)}, nil
}

func (u *siteUsecase) ListContactMessages(ctx context.Context) ([]*model.ContactMessage, error) {
	messages, err := u.contacts.ListMessages(ctx)
	if err != nil {
		return nil, providerError(u.translator, err)
	}

	return messages, nil
}

func (u *siteUsecase) deliver(msg *model.ContactMessage) error {
	if u.recipient == "" {
		return mailer.ErrNotEnabled
	}

	return u.sender.Send(mailer.Email{
		To:      []string{u.recipient},
		ReplyTo: msg.Email,
		Subject: fmt.Sprintf("[%s] %s", u.siteName, msg.Subject),
		Body: fmt.Sprintf(
			"Gönderen: %s <%s>\nTarih: %s\n\n%s\n",
			msg.Name,
			msg.Email,
			msg.CreatedAt.Format(time.RFC3339),
			msg.Message,
		),
	})
}

func (u *siteUsecase) invalidEmail() *AccountError {
	return &AccountError{
		Kind:    ErrValidation,
		Message: u.translator.Translate(provider.NewError(provider.CodeInvalidEmail, "invalid email")),
	}
}
