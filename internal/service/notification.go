package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"sportify-api/internal/client"
	"sportify-api/internal/model"
)

// NotificationService sends email in the background. Delivery failures are
// logged and never reported to the caller.
type NotificationService interface {
	SendVerification(ctx context.Context, email, token string)
	// SendOrderConfirmation mails the account holder, not the shipping contact.
	SendOrderConfirmation(ctx context.Context, to string, order *model.Order, items []*model.OrderItem)
	// Wait blocks until in-flight sends finish or ctx is done.
	Wait(ctx context.Context) error
}

var (
	verificationTmpl = template.Must(template.New("verify").Parse(
		`<p>Click the button to verify your email:</p>` +
			`<a href="{{.Link}}" style="background-color: #4CAF50; color: white; padding: 15px 32px; text-decoration: none; display: inline-block;">Verify Email</a>` +
			`<p>This link expires in {{.Expiry}}.</p>`))

	orderTmpl = template.Must(template.New("order").Parse(
		`<p>Your order #{{.Order.ID}} has been placed successfully. Total: ₹{{.Order.Total.StringFixed 2}}</p>` +
			`<ul>{{range .Items}}<li>{{.ProductID}} × {{.Quantity}} @ ₹{{.Price.StringFixed 2}}</li>{{end}}</ul>` +
			`<p>Shipping to: {{.Order.Shipping.Name}}, {{.Order.Shipping.Address1}}, {{.Order.Shipping.City}}, {{.Order.Shipping.State}} {{.Order.Shipping.Pin}}</p>`))
)

type notificationServiceImpl struct {
	mailClient      client.MailClient
	baseURL         string
	verificationTTL time.Duration
	sendTimeout     time.Duration
	logger          *slog.Logger
	wg              sync.WaitGroup
}

func NewNotificationService(
	mailClient client.MailClient,
	baseURL string,
	verificationTTL time.Duration,
	logger *slog.Logger,
) NotificationService {
	return &notificationServiceImpl{
		mailClient:      mailClient,
		baseURL:         baseURL,
		verificationTTL: verificationTTL,
		sendTimeout:     30 * time.Second,
		logger:          logger,
	}
}

func (s *notificationServiceImpl) SendVerification(ctx context.Context, email, token string) {
	link := fmt.Sprintf("%s/verify?token=%s", s.baseURL, url.QueryEscape(token))

	body, err := render(verificationTmpl, map[string]any{
		"Link":   link,
		"Expiry": s.verificationTTL.String(),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "render verification email", "error", err)
		return
	}

	s.dispatch(ctx, "verification", &client.Mail{
		To:      email,
		Subject: "Verify your email",
		HTML:    body,
	})
}

func (s *notificationServiceImpl) SendOrderConfirmation(ctx context.Context, to string, order *model.Order, items []*model.OrderItem) {
	body, err := render(orderTmpl, map[string]any{
		"Order": order,
		"Items": items,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "render order email", "order_id", order.ID, "error", err)
		return
	}

	s.dispatch(ctx, "order_confirmation", &client.Mail{
		To:      to,
		Subject: "Checkout Successful",
		HTML:    body,
	})
}

func (s *notificationServiceImpl) dispatch(ctx context.Context, kind string, mail *client.Mail) {
	// outlive the request that triggered the send
	ctx = context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
		defer cancel()

		if err := s.mailClient.Send(ctx, mail); err != nil {
			s.logger.ErrorContext(ctx, "send email", "kind", kind, "to", mail.To, "error", err)
			return
		}
		s.logger.InfoContext(ctx, "email sent", "kind", kind, "to", mail.To)
	}()
}

func (s *notificationServiceImpl) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
