package mailer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_FROM", "site@example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Enabled())
	assert.Equal(t, 587, cfg.Port)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, (&Config{}).Validate())
	assert.Error(t, (&Config{Host: "smtp.example.com", Port: 587}).Validate())
	assert.Error(t, (&Config{Host: "smtp.example.com", From: "a@x.com"}).Validate())
}

func TestNewMailer_Disabled(t *testing.T) {
	_, err := NewMailer(&Config{})
	assert.ErrorIs(t, err, ErrNotEnabled)
}

func TestMailer_Message(t *testing.T) {
	m, err := NewMailer(&Config{Host: "smtp.example.com", Port: 587, From: "site@example.com"})
	require.NoError(t, err)

	assert.ErrorIs(t, m.Send(Email{Subject: "hi"}), ErrNoRecipients)

	msg := m.message(Email{
		To:      []string{"office@example.com"},
		ReplyTo: "parent@example.com",
		Subject: "Kayıt",
		Body:    "Merhaba",
	})

	assert.Equal(t, []string{"site@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"parent@example.com"}, msg.GetHeader("Reply-To"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Merhaba")
}

func TestDiscard(t *testing.T) {
	assert.ErrorIs(t, Discard{}.Send(Email{To: []string{"a@x.com"}}), ErrNotEnabled)
}
