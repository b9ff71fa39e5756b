package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v76"

	"bizprofile/internal/apperror"
)

// CheckoutSessions is the Stripe checkout session API.
type CheckoutSessions interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// PaymentService starts subscription checkouts with Stripe.
type PaymentService struct {
	sessions CheckoutSessions
	priceID  string
	domain   string
}

// NewPaymentService creates a new PaymentService. sessions may be nil when
// payments are not configured.
func NewPaymentService(sessions CheckoutSessions, priceID, domain string) *PaymentService {
	return &PaymentService{
		sessions: sessions,
		priceID:  priceID,
		domain:   strings.TrimRight(domain, "/"),
	}
}

// CreateCheckout opens a subscription checkout for email and returns the
// URL the browser should be sent to.
func (s *PaymentService) CreateCheckout(ctx context.Context, email string) (string, error) {
	if s.sessions == nil || s.priceID == "" || s.priceID == "None" {
		return "", apperror.New(apperror.ErrUpstream, "payments are not configured", nil)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail: stripe.String(email),
		SuccessURL:    stripe.String(s.domain + "/dashboard"),
		CancelURL:     stripe.String(s.domain),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.priceID),
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	session, err := s.sessions.New(params)
	if err != nil {
		logrus.WithError(err).WithField("email", email).Error("stripe checkout failed")
		return "", apperror.Upstream("stripe", err)
	}
	return session.URL, nil
}
