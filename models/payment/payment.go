package payment

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is an append-only record of a completed charge against a parcel.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ParcelID      string             `bson:"parcelId" json:"parcelId"`
	Email         string             `bson:"email" json:"email"`
	Amount        float64            `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency" json:"currency"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaymentMethod string             `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	PaidAt        time.Time          `bson:"paid_at" json:"paid_at"`
	PaidAtString  string             `bson:"paid_at_string" json:"paid_at_string"`
}
