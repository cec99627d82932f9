package parcel

import (
	"time"

	"parcel-delivery/models/parcel"
	"parcel-delivery/validation"
)

// StoreParcelRequest is the body of POST /parcels.
type StoreParcelRequest struct {
	AddedBy    string  `json:"addedBy" validate:"required,email"`
	ParcelType string  `json:"parcelType" validate:"required,oneof=document non-document"`
	Title      string  `json:"title" validate:"required,max=200"`
	Weight     float64 `json:"weight" validate:"gte=0"`
	Cost       float64 `json:"cost" validate:"gte=0"`

	SenderName        string `json:"sender_name" validate:"required"`
	SenderContact     string `json:"sender_contact" validate:"required"`
	SenderRegion      string `json:"sender_region" validate:"required"`
	SenderCenter      string `json:"sender_center" validate:"required"`
	SenderAddress     string `json:"sender_address" validate:"required"`
	PickupInstruction string `json:"pickup_instruction"`

	ReceiverName        string `json:"receiver_name" validate:"required"`
	ReceiverContact     string `json:"receiver_contact" validate:"required"`
	ReceiverRegion      string `json:"receiver_region" validate:"required"`
	ReceiverCenter      string `json:"receiver_center" validate:"required"`
	ReceiverAddress     string `json:"receiver_address" validate:"required"`
	DeliveryInstruction string `json:"delivery_instruction"`

	TrackingID string `json:"tracking_id"`
	// Only payments may move a parcel to Paid.
	Status string `json:"status" validate:"omitempty,eq=Unpaid"`
}

func (r *StoreParcelRequest) Validate() error {
	return validation.Struct(r)
}

// ToModel builds the document to insert; status is always Unpaid.
func (r *StoreParcelRequest) ToModel(createdAt time.Time) parcel.Parcel {
	return parcel.Parcel{
		AddedBy:             r.AddedBy,
		ParcelType:          r.ParcelType,
		Title:               r.Title,
		Weight:              r.Weight,
		Cost:                r.Cost,
		SenderName:          r.SenderName,
		SenderContact:       r.SenderContact,
		SenderRegion:        r.SenderRegion,
		SenderCenter:        r.SenderCenter,
		SenderAddress:       r.SenderAddress,
		PickupInstruction:   r.PickupInstruction,
		ReceiverName:        r.ReceiverName,
		ReceiverContact:     r.ReceiverContact,
		ReceiverRegion:      r.ReceiverRegion,
		ReceiverCenter:      r.ReceiverCenter,
		ReceiverAddress:     r.ReceiverAddress,
		DeliveryInstruction: r.DeliveryInstruction,
		TrackingID:          r.TrackingID,
		Status:              parcel.StatusUnpaid,
		CreatedAt:           createdAt,
	}
}

// ListParcelsQuery filters GET /parcels; email matches the owner (addedBy).
type ListParcelsQuery struct {
	Email      string `query:"email"`
	ParcelType string `query:"parcelType"`
}

func (q *ListParcelsQuery) Validate() error {
	return nil
}

type DeleteParcelResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}
