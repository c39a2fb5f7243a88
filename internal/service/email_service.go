package service

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/tour-service/internal/config"
)

// Mailer sends outbound account mail. The SMTP implementation is swapped for
// a fake in tests.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, name, resetURL string) error
	SendWelcome(ctx context.Context, to, name string) error
}

// SMTPMailer delivers mail over SMTP, using STARTTLS and PlainAuth when the
// server offers them.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer builds a mailer from config.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendPasswordReset mails the plaintext reset link. The link is valid for
// the configured reset window (10 minutes by default).
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, name, resetURL string) error {
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nForgot your password? Submit a PATCH request with your new password to:\r\n%s\r\n\r\n"+
			"The link is valid for 10 minutes. If you didn't forget your password, please ignore this email.\r\n",
		name, resetURL)
	return m.send(ctx, to, "Your password reset token (valid for 10 min)", body)
}

// SendWelcome mails a short greeting to a new account.
func (m *SMTPMailer) SendWelcome(ctx context.Context, to, name string) error {
	body := fmt.Sprintf("Hi %s,\r\n\r\nWelcome aboard! Your account is ready.\r\n", name)
	return m.send(ctx, to, "Welcome to the tour family", body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	var sb strings.Builder
	sb.WriteString("From: " + m.cfg.From + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)

	dialer := &net.Dialer{Timeout: 5 * time.Second}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Deadline = deadline
	}
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Hello("localhost"); err != nil {
		return err
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return err
		}
	}
	if m.cfg.User != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(sb.String())); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
