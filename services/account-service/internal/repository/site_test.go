package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/model"
)

func TestNewsletterRepository_Subscribe(t *testing.T) {
	ctx := context.Background()
	repo := NewNewsletterRepository(newStore())

	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	created, err := repo.Subscribe(ctx, &model.NewsletterSubscription{Email: "a@x.com", SubscribedAt: first})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Subscribe(ctx, &model.NewsletterSubscription{Email: "a@x.com", SubscribedAt: first.Add(time.Hour)})
	require.NoError(t, err)
	assert.False(t, created)
}

func TestContactRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewContactRepository(newStore())

	require.NoError(t, repo.CreateMessage(ctx, &model.ContactMessage{
		ID:      "m1",
		Name:    "Veli",
		Email:   "veli@x.com",
		Subject: "Kayıt",
		Message: "Merhaba",
	}))

	require.NoError(t, repo.MarkDelivered(ctx, "m1"))
	assert.Error(t, repo.MarkDelivered(ctx, "missing"))

	messages, err := repo.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Kayıt", messages[0].Subject)
	assert.True(t, messages[0].Delivered)
}
