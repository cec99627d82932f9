package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	parcelModel "parcel-delivery/models/parcel"
	paymentModel "parcel-delivery/models/payment"
	"parcel-delivery/repositories"
	paymentTypes "parcel-delivery/types/payment"
)

var fixedNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *repositories.MockPaymentRepository, *repositories.MockParcelRepository) {
	ctrl := gomock.NewController(t)
	payments := repositories.NewMockPaymentRepository(ctrl)
	parcels := repositories.NewMockParcelRepository(ctrl)

	svc := NewPaymentService(payments, parcels)
	svc.now = func() time.Time { return fixedNow }
	return svc, payments, parcels
}

func validRequest(parcelID primitive.ObjectID) paymentTypes.RecordPaymentRequest {
	return paymentTypes.RecordPaymentRequest{
		ParcelID:      parcelID.Hex(),
		Email:         "sender@example.com",
		Amount:        150,
		Currency:      "usd",
		TransactionID: "pi_123",
		PaymentMethod: "card",
	}
}

func TestRecordMarksParcelPaid(t *testing.T) {
	svc, payments, parcels := newTestService(t)
	parcelID := primitive.NewObjectID()
	paymentID := primitive.NewObjectID()

	gomock.InOrder(
		payments.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *paymentModel.Payment) (primitive.ObjectID, error) {
				if !p.PaidAt.Equal(fixedNow) {
					t.Errorf("paid_at = %v", p.PaidAt)
				}
				if p.PaidAtString != "2026-10-17T09:30:00Z" {
					t.Errorf("paid_at_string = %q", p.PaidAtString)
				}
				if p.ParcelID != parcelID.Hex() || p.Amount != 150 {
					t.Errorf("payment = %+v", p)
				}
				return paymentID, nil
			}),
		parcels.EXPECT().SetStatus(gomock.Any(), parcelID, parcelModel.StatusPaid).Return(int64(1), nil),
	)

	res, err := svc.Record(context.Background(), validRequest(parcelID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.InsertedID != paymentID || !res.ParcelUpdated {
		t.Errorf("result = %+v", res)
	}
}

func TestRecordKeepsPaymentWhenParcelMissing(t *testing.T) {
	svc, payments, parcels := newTestService(t)
	parcelID := primitive.NewObjectID()
	paymentID := primitive.NewObjectID()

	payments.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(paymentID, nil)
	parcels.EXPECT().SetStatus(gomock.Any(), parcelID, parcelModel.StatusPaid).Return(int64(0), nil)

	res, err := svc.Record(context.Background(), validRequest(parcelID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ParcelUpdated {
		t.Error("parcelUpdated should be false")
	}
	if res.InsertedID != paymentID {
		t.Errorf("insertedId = %s", res.InsertedID.Hex())
	}
}

func TestRecordRollsBackOnParcelUpdateFailure(t *testing.T) {
	svc, payments, parcels := newTestService(t)
	parcelID := primitive.NewObjectID()
	paymentID := primitive.NewObjectID()
	storeErr := errors.New("connection reset")

	gomock.InOrder(
		payments.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(paymentID, nil),
		parcels.EXPECT().SetStatus(gomock.Any(), parcelID, parcelModel.StatusPaid).Return(int64(0), storeErr),
		payments.EXPECT().Delete(gomock.Any(), paymentID).Return(nil),
	)

	_, err := svc.Record(context.Background(), validRequest(parcelID))
	if !errors.Is(err, storeErr) {
		t.Fatalf("error = %v, want wrapped store error", err)
	}
}

func TestRecordRollbackSurvivesCanceledRequest(t *testing.T) {
	svc, payments, parcels := newTestService(t)
	parcelID := primitive.NewObjectID()
	paymentID := primitive.NewObjectID()

	ctx, cancel := context.WithCancel(context.Background())

	payments.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(paymentID, nil)
	parcels.EXPECT().SetStatus(gomock.Any(), parcelID, parcelModel.StatusPaid).
		DoAndReturn(func(context.Context, primitive.ObjectID, parcelModel.Status) (int64, error) {
			cancel()
			return 0, context.Canceled
		})
	payments.EXPECT().Delete(gomock.Any(), paymentID).
		DoAndReturn(func(ctx context.Context, _ primitive.ObjectID) error {
			if ctx.Err() != nil {
				t.Errorf("compensation ran on a canceled context: %v", ctx.Err())
			}
			return nil
		})

	if _, err := svc.Record(ctx, validRequest(parcelID)); err == nil {
		t.Fatal("expected error")
	}
}

func TestRecordInsertFailureSkipsParcel(t *testing.T) {
	svc, payments, _ := newTestService(t)

	payments.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(primitive.NilObjectID, errors.New("write failed"))

	if _, err := svc.Record(context.Background(), validRequest(primitive.NewObjectID())); err == nil {
		t.Fatal("expected error")
	}
}

func TestRecordInvalidParcelID(t *testing.T) {
	svc, _, _ := newTestService(t)
	req := validRequest(primitive.NewObjectID())
	req.ParcelID = "nope"

	if _, err := svc.Record(context.Background(), req); !errors.Is(err, ErrInvalidParcelID) {
		t.Fatalf("error = %v, want ErrInvalidParcelID", err)
	}
}

func TestListWithDate(t *testing.T) {
	svc, payments, _ := newTestService(t)

	payments.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f repositories.PaymentFilter) ([]paymentModel.Payment, error) {
			if f.Email != "a@b.co" {
				t.Errorf("email = %q", f.Email)
			}
			if f.PaidFrom == nil || !f.PaidFrom.Equal(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)) {
				t.Errorf("from = %v", f.PaidFrom)
			}
			if f.PaidTo == nil || f.PaidTo.Day() != 17 || f.PaidTo.Hour() != 23 {
				t.Errorf("to = %v", f.PaidTo)
			}
			return []paymentModel.Payment{}, nil
		})

	if _, err := svc.List(context.Background(), paymentTypes.ListPaymentsQuery{Email: "a@b.co", Date: "2026-10-17"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListWithoutDate(t *testing.T) {
	svc, payments, _ := newTestService(t)

	payments.EXPECT().List(gomock.Any(), repositories.PaymentFilter{}).Return([]paymentModel.Payment{}, nil)

	if _, err := svc.List(context.Background(), paymentTypes.ListPaymentsQuery{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
