package httpServices

//go:generate mockgen -source=service.go -destination=mock_gateway.go -package=httpServices

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Gateway creates card payment intents on behalf of the browser client.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (string, error)
}

type StripeClient struct {
	api *client.API
}

func NewClient(secretKey string) *StripeClient {
	return newClient(secretKey, nil)
}

// NewClientWithURL points the client at another API base, e.g. a local stub.
func NewClientWithURL(secretKey, baseURL string) *StripeClient {
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(baseURL),
		HTTPClient:        &http.Client{Timeout: 10 * time.Second},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	})
	return newClient(secretKey, &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
}

func newClient(secretKey string, backends *stripe.Backends) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, backends)
	return &StripeClient{api: api}
}

// CreatePaymentIntent returns the client secret of a new card-only intent.
func (c *StripeClient) CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.Amount),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			return "", &GatewayError{Message: stripeErr.Msg, Err: err}
		}
		return "", &GatewayError{Message: err.Error(), Err: err}
	}
	return intent.ClientSecret, nil
}
