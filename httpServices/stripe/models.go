package httpServices

// PaymentIntentRequest is what the payment-intent route forwards to Stripe.
type PaymentIntentRequest struct {
	Amount   int64
	Currency string
}

// GatewayError carries the gateway's own message back to the client.
type GatewayError struct {
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	return "payment gateway: " + e.Message
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
