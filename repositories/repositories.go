// Package repositories holds one store adapter per document collection.
// Controllers and services depend on the interfaces below; the Mongo types
// in this package implement them.
package repositories

//go:generate mockgen -source=repositories.go -destination=mock_repositories.go -package=repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcel-delivery/models/parcel"
	"parcel-delivery/models/payment"
	"parcel-delivery/models/rider"
	"parcel-delivery/models/tracking"
	"parcel-delivery/models/user"
)

// ErrNotFound is returned when an id or key matches no document.
var ErrNotFound = errors.New("document not found")

type ParcelRepository interface {
	List(ctx context.Context, filter ParcelFilter) ([]parcel.Parcel, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*parcel.Parcel, error)
	Insert(ctx context.Context, p *parcel.Parcel) (primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	// SetStatus returns how many documents changed; an already-set status counts as zero.
	SetStatus(ctx context.Context, id primitive.ObjectID, status parcel.Status) (int64, error)
}

type PaymentRepository interface {
	List(ctx context.Context, filter PaymentFilter) ([]payment.Payment, error)
	Insert(ctx context.Context, p *payment.Payment) (primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TrackingRepository interface {
	Insert(ctx context.Context, e *tracking.Event) (primitive.ObjectID, error)
	ListByTrackingID(ctx context.Context, trackingID string) ([]tracking.Event, error)
}

type RiderRepository interface {
	List(ctx context.Context, filter RiderFilter) ([]rider.Rider, error)
	Insert(ctx context.Context, r *rider.Rider) (primitive.ObjectID, error)
	// UpdateStatus returns the status the rider had before the update.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status rider.Status, at time.Time) (rider.Status, error)
}

type UserRepository interface {
	Insert(ctx context.Context, u *user.User) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	// SetRoleByEmail returns how many users matched the email.
	SetRoleByEmail(ctx context.Context, email, role string) (int64, error)
}
