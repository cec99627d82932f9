package tracking

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcel-delivery/validation"
)

// StoreTrackingRequest is the body of POST /tracking.
type StoreTrackingRequest struct {
	TrackingID string `json:"tracking_id" validate:"required,max=64"`
	ParcelID   string `json:"parcel_id" validate:"omitempty,mongodb"`
	Status     string `json:"status" validate:"required,max=64"`
	Message    string `json:"message" validate:"required,max=1000"`
	UpdatedBy  string `json:"updated_by" validate:"max=255"`
}

func (r *StoreTrackingRequest) Validate() error {
	return validation.Struct(r)
}

type StoreTrackingResponse struct {
	Success    bool               `json:"success"`
	InsertedID primitive.ObjectID `json:"insertedId"`
}
