package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcel-delivery/logger"
	parcelModel "parcel-delivery/models/parcel"
	paymentModel "parcel-delivery/models/payment"
	"parcel-delivery/repositories"
	paymentTypes "parcel-delivery/types/payment"
	"parcel-delivery/utils"
)

const compensationTimeout = 5 * time.Second

var ErrInvalidParcelID = errors.New("invalid parcel id")

// RecordResult reports what a payment record changed.
type RecordResult struct {
	InsertedID    primitive.ObjectID
	ParcelUpdated bool
}

// Service records payments and marks the paid parcel.
type Service struct {
	payments repositories.PaymentRepository
	parcels  repositories.ParcelRepository
	now      func() time.Time
}

func NewPaymentService(payments repositories.PaymentRepository, parcels repositories.ParcelRepository) *Service {
	return &Service{
		payments: payments,
		parcels:  parcels,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// List returns payments for the filter, newest first. A date narrows the
// result to one UTC calendar day.
func (s *Service) List(ctx context.Context, q paymentTypes.ListPaymentsQuery) ([]paymentModel.Payment, error) {
	filter := repositories.PaymentFilter{Email: q.Email}
	if q.Date != "" {
		from, to, err := utils.DayRange(q.Date)
		if err != nil {
			return nil, fmt.Errorf("parse payment date: %w", err)
		}
		filter.PaidFrom, filter.PaidTo = &from, &to
	}
	return s.payments.List(ctx, filter)
}

// Record stores the payment first and then flips the parcel to Paid. A store
// failure on the parcel update deletes the payment again.
func (s *Service) Record(ctx context.Context, req paymentTypes.RecordPaymentRequest) (*RecordResult, error) {
	parcelID, err := primitive.ObjectIDFromHex(req.ParcelID)
	if err != nil {
		return nil, ErrInvalidParcelID
	}

	paidAt := s.now()
	p := &paymentModel.Payment{
		ParcelID:      req.ParcelID,
		Email:         req.Email,
		Amount:        req.Amount,
		Currency:      req.Currency,
		TransactionID: req.TransactionID,
		PaymentMethod: req.PaymentMethod,
		PaidAt:        paidAt,
		PaidAtString:  paidAt.Format(time.RFC3339),
	}

	paymentID, err := s.payments.Insert(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	modified, err := s.parcels.SetStatus(ctx, parcelID, parcelModel.StatusPaid)
	if err != nil {
		s.rollbackPayment(ctx, paymentID)
		return nil, fmt.Errorf("mark parcel %s paid: %w", req.ParcelID, err)
	}

	if modified == 0 {
		logger.Warning("Payment " + paymentID.Hex() + " recorded but parcel " + req.ParcelID + " was not found or already paid")
	}

	return &RecordResult{InsertedID: paymentID, ParcelUpdated: modified > 0}, nil
}

func (s *Service) rollbackPayment(ctx context.Context, id primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	if err := s.payments.Delete(ctx, id); err != nil {
		logger.Error("Failed to roll back payment "+id.Hex(), err)
		return
	}
	logger.Warning("Rolled back payment " + id.Hex())
}
