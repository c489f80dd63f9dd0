package delivery

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/foliokit/backend/internal/model"
)

// SMTPConfig carries the mail-transport settings. User and Pass are
// required; the rest have working defaults for the common Gmail setup.
type SMTPConfig struct {
	Host string // default "smtp.gmail.com"
	Port string // default "587"
	User string // account and From address
	Pass string // app password
	To   string // recipient; defaults to User (self-notification)
}

// SMTPSender delivers submissions over an authenticated STARTTLS session.
// The transport is verified (NOOP after auth) before any message is sent.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates an SMTPSender, filling in defaults.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.To == "" {
		cfg.To = cfg.User
	}
	return &SMTPSender{cfg: cfg}
}

// Send implements Sender.
func (s *SMTPSender) Send(ctx context.Context, sub model.Submission, meta model.SubmissionMeta) error {
	if s.cfg.User == "" || s.cfg.Pass == "" {
		return fmt.Errorf("%w: EMAIL_USER and EMAIL_PASS are required for SMTP delivery", ErrNotConfigured)
	}

	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrUnavailable, addr, err)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: greeting: %v", ErrUnavailable, err)
	}
	defer c.Close()

	// Refuse to send credentials or mail over plaintext.
	if ok, _ := c.Extension("STARTTLS"); !ok {
		return fmt.Errorf("%w: server does not offer STARTTLS", ErrUnavailable)
	}
	if err := c.StartTLS(&tls.Config{
		ServerName: s.cfg.Host,
		MinVersion: tls.VersionTLS12,
	}); err != nil {
		return fmt.Errorf("%w: starttls: %v", ErrUnavailable, err)
	}
	if err := c.Auth(smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)); err != nil {
		return fmt.Errorf("%w: auth: %v", ErrUnavailable, err)
	}

	// Verify the transport before committing to a send.
	if err := c.Noop(); err != nil {
		return fmt.Errorf("%w: verify: %v", ErrUnavailable, err)
	}

	if err := c.Mail(s.cfg.User); err != nil {
		return fmt.Errorf("%w: mail from: %v", ErrSendFailed, err)
	}
	if err := c.Rcpt(s.cfg.To); err != nil {
		return fmt.Errorf("%w: rcpt to: %v", ErrSendFailed, err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("%w: data: %v", ErrSendFailed, err)
	}
	if _, err := w.Write(s.message(sub, meta)); err != nil {
		return fmt.Errorf("%w: write body: %v", ErrSendFailed, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: close body: %v", ErrSendFailed, err)
	}
	return c.Quit()
}

// message composes the notification mail. Reply-To points at the submitter
// so a reply from the inbox goes straight back to them.
func (s *SMTPSender) message(sub model.Submission, meta model.SubmissionMeta) []byte {
	var b strings.Builder
	b.WriteString("From: \"Portfolio Contact\" <" + s.cfg.User + ">\r\n")
	b.WriteString("To: " + s.cfg.To + "\r\n")
	b.WriteString("Reply-To: " + sub.Email + "\r\n")
	b.WriteString("Subject: New Contact from " + sub.Name + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Name: %s\r\nEmail: %s\r\nIP: %s\r\nTime: %s\r\n\r\nMessage:\r\n%s\r\n",
		sub.Name, sub.Email, meta.ClientIP, meta.ReceivedAt.Format(time.RFC3339), sub.Message)
	return []byte(b.String())
}
