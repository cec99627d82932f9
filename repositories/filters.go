package repositories

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcel-delivery/utils"
)

// ParcelFilter narrows a parcel listing. Empty fields are left out of the query.
type ParcelFilter struct {
	OwnerEmail string
	ParcelType string
}

func (f ParcelFilter) Query() bson.M {
	query := bson.M{}
	if f.OwnerEmail != "" {
		query["addedBy"] = f.OwnerEmail
	}
	if f.ParcelType != "" {
		query["parcelType"] = f.ParcelType
	}
	return query
}

// PaymentFilter narrows a payment listing. PaidFrom and PaidTo are inclusive.
type PaymentFilter struct {
	Email    string
	PaidFrom *time.Time
	PaidTo   *time.Time
}

func (f PaymentFilter) Query() bson.M {
	query := bson.M{}
	if f.Email != "" {
		query["email"] = f.Email
	}

	paidAt := bson.M{}
	if f.PaidFrom != nil {
		paidAt["$gte"] = *f.PaidFrom
	}
	if f.PaidTo != nil {
		paidAt["$lte"] = *f.PaidTo
	}
	if len(paidAt) > 0 {
		query["paid_at"] = paidAt
	}
	return query
}

// RiderFilter matches status and name as whole values, ignoring case.
type RiderFilter struct {
	Status string
	Search string
}

func (f RiderFilter) Query() bson.M {
	query := bson.M{}
	if f.Status != "" {
		query["status"] = exactCaseInsensitive(f.Status)
	}
	if f.Search != "" {
		query["name"] = exactCaseInsensitive(f.Search)
	}
	return query
}

func exactCaseInsensitive(value string) primitive.Regex {
	return primitive.Regex{Pattern: utils.ExactMatchPattern(value), Options: "i"}
}
