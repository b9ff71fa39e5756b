package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"bizprofile/internal/apperror"
)

// SubscriptionService adds addresses to the Mailgun mailing list.
type SubscriptionService struct {
	listURL string // e.g. https://api.mailgun.net/v3/lists/news@example.com/members
	apiKey  string
	timeout time.Duration
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(listURL, apiKey string) *SubscriptionService {
	return &SubscriptionService{
		listURL: listURL,
		apiKey:  apiKey,
		timeout: 15 * time.Second,
	}
}

// Subscribe adds email to the mailing list, updating it if already present.
func (s *SubscriptionService) Subscribe(ctx context.Context, email string) error {
	if s.listURL == "" || s.listURL == "None" {
		return apperror.New(apperror.ErrUpstream, "mailing list is not configured", nil)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	args.Set("address", email)
	args.Set("subscribed", "yes")
	args.Set("upsert", "yes")

	agent := fiber.Post(s.listURL).
		BasicAuth("api", s.apiKey).
		Form(args).
		Timeout(s.timeout)
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return apperror.Upstream("mailgun", err)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return apperror.Upstream("mailgun", errors.Join(errs...))
	}
	if code < 200 || code >= 300 {
		return apperror.Upstream("mailgun", fmt.Errorf("status %d: %s", code, body))
	}

	logrus.WithField("email", email).Info("subscribed to mailing list")
	return nil
}
