package client

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"time"

	"sportify-api/internal/config"
)

type Mail struct {
	To      string
	Subject string
	HTML    string
}

type MailClient interface {
	Send(ctx context.Context, mail *Mail) error
}

type smtpClientImpl struct {
	addr string
	from string
	auth smtp.Auth
}

// NewMailClient returns an SMTP client, or a client that only logs outgoing
// mail when no SMTP host is configured.
func NewMailClient(cfg *config.SMTP, logger *slog.Logger) MailClient {
	if cfg.Host == "" {
		return &logMailClientImpl{logger: logger}
	}

	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}

	from := cfg.From
	if from == "" {
		from = cfg.User
	}

	return &smtpClientImpl{
		addr: net.JoinHostPort(cfg.Host, cfg.Port),
		from: from,
		auth: auth,
	}
}

func (c *smtpClientImpl) Send(ctx context.Context, mail *Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(c.from, mail, time.Now())
	if err := smtp.SendMail(c.addr, c.auth, c.from, []string{mail.To}, msg); err != nil {
		return fmt.Errorf("smtp send mail: %w", err)
	}
	return nil
}

func buildMessage(from string, mail *Mail, now time.Time) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", mail.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", mail.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", now.Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(mail.HTML)
	return buf.Bytes()
}

type logMailClientImpl struct {
	logger *slog.Logger
}

func (c *logMailClientImpl) Send(ctx context.Context, mail *Mail) error {
	c.logger.InfoContext(ctx, "smtp not configured, mail not sent",
		"to", mail.To,
		"subject", mail.Subject,
		"body", mail.HTML,
	)
	return nil
}
