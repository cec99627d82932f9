package parcel

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Parcel is a shipment record owned by the customer who added it.
type Parcel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	AddedBy    string             `bson:"addedBy" json:"addedBy"`
	ParcelType string             `bson:"parcelType" json:"parcelType"`
	Title      string             `bson:"title" json:"title"`
	Weight     float64            `bson:"weight,omitempty" json:"weight,omitempty"`
	Cost       float64            `bson:"cost" json:"cost"`

	SenderName        string `bson:"sender_name" json:"sender_name"`
	SenderContact     string `bson:"sender_contact" json:"sender_contact"`
	SenderRegion      string `bson:"sender_region" json:"sender_region"`
	SenderCenter      string `bson:"sender_center" json:"sender_center"`
	SenderAddress     string `bson:"sender_address" json:"sender_address"`
	PickupInstruction string `bson:"pickup_instruction,omitempty" json:"pickup_instruction,omitempty"`

	ReceiverName        string `bson:"receiver_name" json:"receiver_name"`
	ReceiverContact     string `bson:"receiver_contact" json:"receiver_contact"`
	ReceiverRegion      string `bson:"receiver_region" json:"receiver_region"`
	ReceiverCenter      string `bson:"receiver_center" json:"receiver_center"`
	ReceiverAddress     string `bson:"receiver_address" json:"receiver_address"`
	DeliveryInstruction string `bson:"delivery_instruction,omitempty" json:"delivery_instruction,omitempty"`

	TrackingID string    `bson:"tracking_id,omitempty" json:"tracking_id,omitempty"`
	Status     Status    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

type Status string

const (
	StatusUnpaid Status = "Unpaid"
	StatusPaid   Status = "Paid"
)

const (
	TypeDocument    = "document"
	TypeNonDocument = "non-document"
)
