package mail

import (
	"context"
	"strings"
	"testing"

	"github.com/notaryweb/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewSenderFallsBackToLog(t *testing.T) {
	_, ok := NewSender(config.SMTPConfig{}, nil).(*LogSender)
	assert.True(t, ok)

	_, ok = NewSender(config.SMTPConfig{Host: "smtp.example.com", Port: 587}, nil).(*LogSender)
	assert.True(t, ok, "missing recipient keeps the log sender")

	_, ok = NewSender(config.SMTPConfig{Host: "smtp.example.com", Port: 587, Recipient: "office@example.com"}, nil).(*SMTPSender)
	assert.True(t, ok)
}

func TestLogSenderRecordsMessage(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sender := NewLogSender(zap.New(core))

	err := sender.Send(context.Background(), Message{ReplyTo: "maria@example.com", Subject: "Escritura", Body: "Olá"})
	require.NoError(t, err)

	entries := logs.FilterMessage("contact message received").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "maria@example.com", entries[0].ContextMap()["reply_to"])
	assert.Equal(t, "Escritura", entries[0].ContextMap()["subject"])
}

func TestComposeHeadersAndBody(t *testing.T) {
	raw := string(Compose("site@example.com", "office@example.com", Message{
		ReplyTo: "maria@example.com",
		Subject: "Procuração",
		Body:    "linha 1\nlinha 2\r\nlinha 3",
	}))

	head, body, found := strings.Cut(raw, "\r\n\r\n")
	require.True(t, found)

	lines := strings.Split(head, "\r\n")
	assert.Equal(t, "From: site@example.com", lines[0])
	assert.Equal(t, "To: office@example.com", lines[1])
	assert.Equal(t, "Reply-To: maria@example.com", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "Subject: =?utf-8?q?"), lines[3])
	assert.Contains(t, head, "Content-Type: text/plain; charset=UTF-8")
	assert.Equal(t, "linha 1\r\nlinha 2\r\nlinha 3", body)
}

func TestComposeOmitsEmptyReplyTo(t *testing.T) {
	raw := string(Compose("a@example.com", "b@example.com", Message{Subject: "Oi", Body: "x"}))
	assert.NotContains(t, raw, "Reply-To")
	assert.Contains(t, raw, "Subject: Oi\r\n")
}
