package rider

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rider is a delivery courier application and, once approved, the courier account.
type Rider struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	Age              int                `bson:"age,omitempty" json:"age,omitempty"`
	Phone            string             `bson:"phone" json:"phone"`
	NID              string             `bson:"nid" json:"nid"`
	Region           string             `bson:"region" json:"region"`
	District         string             `bson:"district" json:"district"`
	BikeBrand        string             `bson:"bike_brand,omitempty" json:"bike_brand,omitempty"`
	BikeRegistration string             `bson:"bike_registration" json:"bike_registration"`
	Note             string             `bson:"note,omitempty" json:"note,omitempty"`
	Status           Status             `bson:"status" json:"status"`
	RequestedAt      time.Time          `bson:"requested_at" json:"requested_at"`
	UpdatedAt        *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type Status string

const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusDeactivated Status = "deactivated"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusDeactivated:
		return true
	default:
		return false
	}
}

// GetAllStatuses returns every status a rider can be moved to.
func GetAllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusApproved,
		StatusRejected,
		StatusDeactivated,
	}
}
