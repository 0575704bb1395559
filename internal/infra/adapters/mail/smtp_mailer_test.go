// File: internal/infra/adapters/mail/smtp_mailer_test.go
package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"content-studio/internal/config"
	"content-studio/internal/domain/ports/adapter"
)

func newTestMailer(t *testing.T) *SMTPMailer {
	t.Helper()
	logger := zerolog.Nop()
	m, err := NewSMTPMailer(config.EmailConfig{
		Host:     "smtp.test",
		Username: "user",
		Password: "pass",
		From:     "studio@example.com",
	}, &logger)
	if err != nil {
		t.Fatalf("NewSMTPMailer: %v", err)
	}
	return m
}

func TestSMTPMailer_Send(t *testing.T) {
	t.Parallel()
	m := newTestMailer(t)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := m.Send(context.Background(), adapter.Email{
		To:       "dest@example.com",
		Subject:  "Your images",
		TextBody: "plain part",
		HTMLBody: "<p>html part</p>",
	})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if gotAddr != "smtp.test:587" {
		t.Fatalf("expected default port 587, got %q", gotAddr)
	}
	if gotFrom != "studio@example.com" || len(gotTo) != 1 || gotTo[0] != "dest@example.com" {
		t.Fatalf("unexpected envelope from=%q to=%v", gotFrom, gotTo)
	}
	msg := string(gotMsg)
	for _, want := range []string{
		"Subject: Your images",
		"multipart/alternative",
		"text/plain; charset=utf-8",
		"text/html; charset=utf-8",
		"plain part",
		"<p>html part</p>",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestSMTPMailer_PlainTextOnly(t *testing.T) {
	t.Parallel()
	m := newTestMailer(t)
	var gotMsg []byte
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotMsg = msg
		return nil
	}
	if err := m.Send(context.Background(), adapter.Email{To: "a@b.c", Subject: "s", TextBody: "hi"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if strings.Contains(string(gotMsg), "multipart/alternative") {
		t.Fatalf("expected single-part message:\n%s", gotMsg)
	}
}

func TestSMTPMailer_Errors(t *testing.T) {
	t.Parallel()
	m := newTestMailer(t)

	if err := m.Send(context.Background(), adapter.Email{}); err == nil {
		t.Fatalf("expected error for empty recipient")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Send(ctx, adapter.Email{To: "a@b.c"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}

	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		return errors.New("connection refused")
	}
	if err := m.Send(context.Background(), adapter.Email{To: "a@b.c"}); err == nil {
		t.Fatalf("expected transport error surfaced")
	}
}
