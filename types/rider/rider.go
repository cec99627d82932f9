package rider

import (
	"strings"
	"time"

	"parcel-delivery/models/rider"
	"parcel-delivery/validation"
)

// ApplyRequest is the body of POST /riders. Any status in the body is ignored.
type ApplyRequest struct {
	Name             string `json:"name" validate:"required,max=120"`
	Email            string `json:"email" validate:"required,email"`
	Age              int    `json:"age" validate:"omitempty,gte=18,lte=100"`
	Phone            string `json:"phone" validate:"required,max=20"`
	NID              string `json:"nid" validate:"required,max=32"`
	Region           string `json:"region" validate:"required"`
	District         string `json:"district" validate:"required"`
	BikeBrand        string `json:"bike_brand"`
	BikeRegistration string `json:"bike_registration" validate:"required"`
	Note             string `json:"note" validate:"max=1000"`
}

func (r *ApplyRequest) Validate() error {
	return validation.Struct(r)
}

func (r *ApplyRequest) ToModel(requestedAt time.Time) rider.Rider {
	return rider.Rider{
		Name:             r.Name,
		Email:            r.Email,
		Age:              r.Age,
		Phone:            r.Phone,
		NID:              r.NID,
		Region:           r.Region,
		District:         r.District,
		BikeBrand:        r.BikeBrand,
		BikeRegistration: r.BikeRegistration,
		Note:             r.Note,
		Status:           rider.StatusPending,
		RequestedAt:      requestedAt,
	}
}

// UpdateStatusRequest is the body of PATCH /riders/:id. Email names the user
// promoted when the rider is approved.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Email  string `json:"email" validate:"omitempty,email"`
}

func (r *UpdateStatusRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if !rider.Status(r.Status).IsValid() {
		return validation.CustomValidationErrors{
			{Field: "status", Message: "must be one of: " + statusNames()},
		}
	}
	if rider.Status(r.Status) == rider.StatusApproved && r.Email == "" {
		return validation.CustomValidationErrors{
			{Field: "email", Message: "is required when approving a rider"},
		}
	}
	return nil
}

func statusNames() string {
	statuses := rider.GetAllStatuses()
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.String()
	}
	return strings.Join(names, " ")
}

// ListRidersQuery filters GET /riders. Both fields match whole values, ignoring case.
type ListRidersQuery struct {
	Status string `query:"status"`
	Search string `query:"search"`
}

func (q *ListRidersQuery) Validate() error {
	return nil
}

type UpdateStatusResponse struct {
	Message      string `json:"message"`
	RiderUpdated bool   `json:"riderUpdated"`
	UserUpdated  bool   `json:"userUpdated"`
}
