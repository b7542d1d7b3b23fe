package repository

import (
	"context"
	"fmt"

	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/model"
	"github.com/vasapolrittideah/school-site-api/shared/provider"
)

const (
	newsletterCollection = "newsletter_subscriptions"
	contactCollection    = "contact_messages"
)

// NewsletterRepository stores newsletter subscriptions.
type NewsletterRepository interface {
	Subscribe(ctx context.Context, sub *model.NewsletterSubscription) (created bool, err error)
}

// ContactRepository stores contact form messages.
type ContactRepository interface {
	CreateMessage(ctx context.Context, msg *model.ContactMessage) error
	MarkDelivered(ctx context.Context, id string) error
	ListMessages(ctx context.Context) ([]*model.ContactMessage, error)
}

type newsletterStoreRepository struct {
	store provider.Store
}

func NewNewsletterRepository(store provider.Store) NewsletterRepository {
	return &newsletterStoreRepository{store: store}
}

// Subscribe stores sub keyed by its email. Subscribing an address twice keeps
// the original subscription date.
func (r *newsletterStoreRepository) Subscribe(ctx context.Context, sub *model.NewsletterSubscription) (bool, error) {
	_, err := r.store.Get(ctx, newsletterCollection, sub.Email)
	if err == nil {
		return false, nil
	}
	if !provider.IsNotFound(err) {
		return false, fmt.Errorf("failed to get subscription: %w", err)
	}

	if err := r.store.Set(ctx, newsletterCollection, sub.Email, sub); err != nil {
		return false, fmt.Errorf("failed to create subscription: %w", err)
	}

	return true, nil
}

type contactStoreRepository struct {
	store provider.Store
}

func NewContactRepository(store provider.Store) ContactRepository {
	return &contactStoreRepository{store: store}
}

func (r *contactStoreRepository) CreateMessage(ctx context.Context, msg *model.ContactMessage) error {
	if err := r.store.Set(ctx, contactCollection, msg.ID, msg); err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	return nil
}

func (r *contactStoreRepository) MarkDelivered(ctx context.Context, id string) error {
	if err := r.store.Update(ctx, contactCollection, id, map[string]any{"delivered": true}); err != nil {
		return fmt.Errorf("failed to mark contact message delivered: %w", err)
	}

	return nil
}

func (r *contactStoreRepository) ListMessages(ctx context.Context) ([]*model.ContactMessage, error) {
	snapshots, err := r.store.List(ctx, contactCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}

	messages := make([]*model.ContactMessage, 0, len(snapshots))
	for _, snap := range snapshots {
		var msg model.ContactMessage
		if err := snap.Decode(&msg); err != nil {
			return nil, fmt.Errorf("failed to decode contact message %s: %w", snap.ID, err)
		}
		messages = append(messages, &msg)
	}

	return messages, nil
}
