package payment

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcel-delivery/validation"
)

// RecordPaymentRequest is the body of POST /payments.
type RecordPaymentRequest struct {
	ParcelID      string  `json:"parcelId" validate:"required,mongodb"`
	Email         string  `json:"email" validate:"required,email"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	Currency      string  `json:"currency" validate:"required,len=3"`
	TransactionID string  `json:"transactionId" validate:"max=255"`
	PaymentMethod string  `json:"paymentMethod" validate:"max=64"`
}

func (r *RecordPaymentRequest) Validate() error {
	r.Currency = strings.ToLower(strings.TrimSpace(r.Currency))
	return validation.Struct(r)
}

// ListPaymentsQuery filters GET /payments; date is a calendar day in UTC.
type ListPaymentsQuery struct {
	Email string `query:"email" validate:"omitempty,email"`
	Date  string `query:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (q *ListPaymentsQuery) Validate() error {
	return validation.Struct(q)
}

// CreateIntentRequest is the body of POST /payment-intent. Amount is in the
// currency's smallest unit.
type CreateIntentRequest struct {
	Amount   int64  `json:"amount" validate:"gt=0"`
	Currency string `json:"currency" validate:"required,len=3"`
}

func (r *CreateIntentRequest) Validate() error {
	r.Currency = strings.ToLower(strings.TrimSpace(r.Currency))
	return validation.Struct(r)
}

type RecordPaymentResponse struct {
	Message       string             `json:"message"`
	InsertedID    primitive.ObjectID `json:"insertedId"`
	ParcelUpdated bool               `json:"parcelUpdated"`
}

type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
