package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcel-delivery/cache"
	"parcel-delivery/constants"
	httpServices "parcel-delivery/httpServices/stripe"
	parcelModel "parcel-delivery/models/parcel"
	paymentModel "parcel-delivery/models/payment"
	riderModel "parcel-delivery/models/rider"
	trackingModel "parcel-delivery/models/tracking"
	userModel "parcel-delivery/models/user"
	"parcel-delivery/repositories"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type testEnv struct {
	app      *fiber.App
	parcels  *repositories.MockParcelRepository
	payments *repositories.MockPaymentRepository
	tracking *repositories.MockTrackingRepository
	riders   *repositories.MockRiderRepository
	users    *repositories.MockUserRepository
	gateway  *httpServices.MockGateway
}

func newTestEnv(t *testing.T, opts ...func(*Dependencies)) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	env := &testEnv{
		parcels:  repositories.NewMockParcelRepository(ctrl),
		payments: repositories.NewMockPaymentRepository(ctrl),
		tracking: repositories.NewMockTrackingRepository(ctrl),
		riders:   repositories.NewMockRiderRepository(ctrl),
		users:    repositories.NewMockUserRepository(ctrl),
		gateway:  httpServices.NewMockGateway(ctrl),
	}

	deps := Dependencies{
		Store:    fakePinger{},
		Parcels:  env.parcels,
		Payments: env.payments,
		Tracking: env.tracking,
		Riders:   env.riders,
		Users:    env.users,
		Gateway:  env.gateway,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	env.app = NewApp(Options{})
	SetupRoutes(env.app, deps)
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string, headers ...string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func decode(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return out
}

func expectStatus(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status = %d, want %d; body = %s", resp.StatusCode, want, body)
	}
}

const validParcel = `{
	"addedBy": "owner@example.com",
	"parcelType": "document",
	"title": "Contract",
	"weight": 0.5,
	"cost": 60,
	"sender_name": "A", "sender_contact": "017", "sender_region": "Dhaka",
	"sender_center": "Mirpur", "sender_address": "Road 1",
	"receiver_name": "B", "receiver_contact": "018", "receiver_region": "Khulna",
	"receiver_center": "Sonadanga", "receiver_address": "Road 2"
}`

func TestHome(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, "GET", "/", "")

	expectStatus(t, resp, body, fiber.StatusOK)
	if string(body) != constants.Greeting {
		t.Errorf("body = %q", body)
	}
	if resp.Header.Get(fiber.HeaderXRequestID) == "" {
		t.Error("missing request id header")
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, "GET", "/health", "")
	expectStatus(t, resp, body, fiber.StatusOK)

	down := newTestEnv(t, func(d *Dependencies) { d.Store = fakePinger{err: errors.New("no route to host")} })
	resp, body = down.do(t, "GET", "/health", "")
	expectStatus(t, resp, body, fiber.StatusServiceUnavailable)
}

func TestListParcelsFilters(t *testing.T) {
	env := newTestEnv(t)
	env.parcels.EXPECT().
		List(gomock.Any(), repositories.ParcelFilter{OwnerEmail: "owner@example.com", ParcelType: "document"}).
		Return([]parcelModel.Parcel{}, nil)

	resp, body := env.do(t, "GET", "/parcels?email=owner@example.com&parcelType=document", "")
	expectStatus(t, resp, body, fiber.StatusOK)
	if strings.TrimSpace(string(body)) != "[]" {
		t.Errorf("body = %s, want []", body)
	}
}

func TestShowParcel(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "GET", "/parcels/not-an-id", "")
	expectStatus(t, resp, body, fiber.StatusBadRequest)
	if got := decode(t, body)["message"]; got != "Invalid parcel ID." {
		t.Errorf("message = %v", got)
	}

	missing := primitive.NewObjectID()
	env.parcels.EXPECT().FindByID(gomock.Any(), missing).Return(nil, repositories.ErrNotFound)
	resp, body = env.do(t, "GET", "/parcels/"+missing.Hex(), "")
	expectStatus(t, resp, body, fiber.StatusNotFound)

	found := primitive.NewObjectID()
	env.parcels.EXPECT().FindByID(gomock.Any(), found).Return(&parcelModel.Parcel{ID: found, Title: "Contract"}, nil)
	resp, body = env.do(t, "GET", "/parcels/"+found.Hex(), "")
	expectStatus(t, resp, body, fiber.StatusOK)
	if got := decode(t, body)["title"]; got != "Contract" {
		t.Errorf("title = %v", got)
	}
}

func TestStoreParcelDefaultsToUnpaid(t *testing.T) {
	env := newTestEnv(t)
	id := primitive.NewObjectID()

	env.parcels.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *parcelModel.Parcel) (primitive.ObjectID, error) {
			if p.Status != parcelModel.StatusUnpaid {
				t.Errorf("status = %q, want Unpaid", p.Status)
			}
			if p.CreatedAt.IsZero() {
				t.Error("created_at not stamped")
			}
			return id, nil
		})

	resp, body := env.do(t, "POST", "/parcels", validParcel)
	expectStatus(t, resp, body, fiber.StatusCreated)

	out := decode(t, body)
	if out["insertedId"] != id.Hex() || out["acknowledged"] != true {
		t.Errorf("body = %v", out)
	}
}

func TestStoreParcelRejectsPaidStatus(t *testing.T) {
	env := newTestEnv(t)
	withPaid := strings.Replace(validParcel, `"title"`, `"status": "Paid", "title"`, 1)

	resp, body := env.do(t, "POST", "/parcels", withPaid)
	expectStatus(t, resp, body, fiber.StatusBadRequest)
}

func TestStoreParcelValidation(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "POST", "/parcels", `{"parcelType":"box"}`)
	expectStatus(t, resp, body, fiber.StatusBadRequest)

	out := decode(t, body)
	if out["code"] != "BAD_REQUEST" {
		t.Errorf("code = %v", out["code"])
	}
	if fields, ok := out["errors"].([]interface{}); !ok || len(fields) == 0 {
		t.Errorf("expected field errors, got %v", out["errors"])
	}

	resp, body = env.do(t, "POST", "/parcels", `{not json`)
	expectStatus(t, resp, body, fiber.StatusBadRequest)
}

func TestDeleteParcel(t *testing.T) {
	env := newTestEnv(t)
	id := primitive.NewObjectID()

	env.parcels.EXPECT().Delete(gomock.Any(), id).Return(int64(1), nil)
	resp, body := env.do(t, "DELETE", "/parcels/"+id.Hex(), "")
	expectStatus(t, resp, body, fiber.StatusOK)
	if got := decode(t, body)["deletedCount"]; got != float64(1) {
		t.Errorf("deletedCount = %v", got)
	}

	env.parcels.EXPECT().Delete(gomock.Any(), id).Return(int64(0), repositories.ErrNotFound)
	resp, body = env.do(t, "DELETE", "/parcels/"+id.Hex(), "")
	expectStatus(t, resp, body, fiber.StatusNotFound)

	resp, body = env.do(t, "DELETE", "/parcels/xyz", "")
	expectStatus(t, resp, body, fiber.StatusBadRequest)
}

func TestInternalErrorsAreSanitized(t *testing.T) {
	env := newTestEnv(t)
	env.parcels.EXPECT().List(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused: mongodb://admin:hunter2@db"))

	resp, body := env.do(t, "GET", "/parcels", "")
	expectStatus(t, resp, body, fiber.StatusInternalServerError)
	if strings.Contains(string(body), "hunter2") {
		t.Errorf("internal error leaked: %s", body)
	}
}

func paymentBody(parcelID primitive.ObjectID) string {
	return `{"parcelId":"` + parcelID.Hex() + `","email":"payer@example.com","amount":60,"currency":"USD","transactionId":"pi_1"}`
}

func TestRecordPayment(t *testing.T) {
	env := newTestEnv(t)
	parcelID := primitive.NewObjectID()
	paymentID := primitive.NewObjectID()

	gomock.InOrder(
		env.payments.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *paymentModel.Payment) (primitive.ObjectID, error) {
				if p.Currency != "usd" {
					t.Errorf("currency = %q, want lowercased", p.Currency)
				}
				if _, err := time.Parse(time.RFC3339, p.PaidAtString); err != nil {
					t.Errorf("paid_at_string = %q: %v", p.PaidAtString, err)
				}
				return paymentID, nil
			}),
		env.parcels.EXPECT().SetStatus(gomock.Any(), parcelID, parcelModel.StatusPaid).Return(int64(1), nil),
	)

	resp, body := env.do(t, "POST", "/payments", paymentBody(parcelID))
	expectStatus(t, resp, body, fiber.StatusCreated)

	out := decode(t, body)
	if out["insertedId"] != paymentID.Hex() || out["parcelUpdated"] != true {
		t.Errorf("body = %v", out)
	}
}

func TestRecordPaymentParcelMissing(t *testing.T) {
	env := newTestEnv(t)
	parcelID := primitive.NewObjectID()

	env.payments.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(primitive.NewObjectID(), nil)
	env.parcels.EXPECT().SetStatus(gomock.Any(), parcelID, parcelModel.StatusPaid).Return(int64(0), nil)

	resp, body := env.do(t, "POST", "/payments", paymentBody(parcelID))
	expectStatus(t, resp, body, fiber.StatusCreated)
	if got := decode(t, body)["parcelUpdated"]; got != false {
		t.Errorf("parcelUpdated = %v", got)
	}
}

func TestRecordPaymentCompensates(t *testing.T) {
	env := newTestEnv(t)
	parcelID := primitive.NewObjectID()
	paymentID := primitive.NewObjectID()

	gomock.InOrder(
		env.payments.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(paymentID, nil),
		env.parcels.EXPECT().SetStatus(gomock.Any(), parcelID, parcelModel.StatusPaid).Return(int64(0), errors.New("write conflict")),
		env.payments.EXPECT().Delete(gomock.Any(), paymentID).Return(nil),
	)

	resp, body := env.do(t, "POST", "/payments", paymentBody(parcelID))
	expectStatus(t, resp, body, fiber.StatusInternalServerError)
}

func TestRecordPaymentValidation(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "POST", "/payments", `{"parcelId":"abc","email":"payer@example.com","amount":60,"currency":"usd"}`)
	expectStatus(t, resp, body, fiber.StatusBadRequest)

	resp, body = env.do(t, "POST", "/payments", `{"parcelId":"`+primitive.NewObjectID().Hex()+`","email":"payer@example.com","amount":0,"currency":"usd"}`)
	expectStatus(t, resp, body, fiber.StatusBadRequest)
}

func TestRecordPaymentIdempotencyKey(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	env := newTestEnv(t, func(d *Dependencies) {
		d.Idempotency = cache.NewRedisIdempotencyStore(client, time.Hour)
	})
	parcelID := primitive.NewObjectID()

	env.payments.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(primitive.NewObjectID(), nil).Times(1)
	env.parcels.EXPECT().SetStatus(gomock.Any(), parcelID, parcelModel.StatusPaid).Return(int64(1), nil).Times(1)

	resp, body := env.do(t, "POST", "/payments", paymentBody(parcelID), "Idempotency-Key", "order-42")
	expectStatus(t, resp, body, fiber.StatusCreated)

	resp, body = env.do(t, "POST", "/payments", paymentBody(parcelID), "Idempotency-Key", "order-42")
	expectStatus(t, resp, body, fiber.StatusConflict)
}

func TestListPayments(t *testing.T) {
	env := newTestEnv(t)

	env.payments.EXPECT().List(gomock.Any(), repositories.PaymentFilter{Email: "payer@example.com"}).
		Return([]paymentModel.Payment{{Email: "payer@example.com", Amount: 60}}, nil)

	resp, body := env.do(t, "GET", "/payments?email=payer@example.com", "")
	expectStatus(t, resp, body, fiber.StatusOK)

	var list []paymentModel.Payment
	if err := json.Unmarshal(body, &list); err != nil || len(list) != 1 {
		t.Errorf("list = %s (%v)", body, err)
	}

	resp, body = env.do(t, "GET", "/payments?date=17-10-2026", "")
	expectStatus(t, resp, body, fiber.StatusBadRequest)
}

func TestCreatePaymentIntent(t *testing.T) {
	env := newTestEnv(t)

	env.gateway.EXPECT().
		CreatePaymentIntent(gomock.Any(), httpServices.PaymentIntentRequest{Amount: 6000, Currency: "usd"}).
		Return("pi_1_secret_x", nil)

	resp, body := env.do(t, "POST", "/payment-intent", `{"amount":6000,"currency":"usd"}`)
	expectStatus(t, resp, body, fiber.StatusOK)
	if got := decode(t, body)["clientSecret"]; got != "pi_1_secret_x" {
		t.Errorf("clientSecret = %v", got)
	}
}

func TestCreatePaymentIntentGatewayFailure(t *testing.T) {
	env := newTestEnv(t)

	env.gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).
		Return("", &httpServices.GatewayError{Message: "Your card was declined.", Err: errors.New("card_error")})

	resp, body := env.do(t, "POST", "/payment-intent", `{"amount":6000,"currency":"usd"}`)
	expectStatus(t, resp, body, fiber.StatusInternalServerError)
	if got := decode(t, body)["message"]; got != "Your card was declined." {
		t.Errorf("message = %v", got)
	}
}

func TestStoreTrackingEvent(t *testing.T) {
	env := newTestEnv(t)
	parcelID := primitive.NewObjectID()
	eventID := primitive.NewObjectID()

	env.tracking.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *trackingModel.Event) (primitive.ObjectID, error) {
			if e.ParcelID == nil || *e.ParcelID != parcelID {
				t.Errorf("parcel_id = %v", e.ParcelID)
			}
			if e.Time.IsZero() {
				t.Error("time not stamped")
			}
			return eventID, nil
		})

	resp, body := env.do(t, "POST", "/tracking",
		`{"tracking_id":"TRK-1","parcel_id":"`+parcelID.Hex()+`","status":"picked_up","message":"Picked up"}`)
	expectStatus(t, resp, body, fiber.StatusCreated)

	out := decode(t, body)
	if out["success"] != true || out["insertedId"] != eventID.Hex() {
		t.Errorf("body = %v", out)
	}
}

func TestStoreTrackingEventWithoutParcel(t *testing.T) {
	env := newTestEnv(t)

	env.tracking.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *trackingModel.Event) (primitive.ObjectID, error) {
			if e.ParcelID != nil {
				t.Errorf("parcel_id = %v, want omitted", e.ParcelID)
			}
			return primitive.NewObjectID(), nil
		})

	resp, body := env.do(t, "POST", "/tracking", `{"tracking_id":"TRK-1","status":"created","message":"Label printed"}`)
	expectStatus(t, resp, body, fiber.StatusCreated)

	resp, body = env.do(t, "POST", "/tracking", `{"tracking_id":"TRK-1","parcel_id":"bad","status":"created","message":"x"}`)
	expectStatus(t, resp, body, fiber.StatusBadRequest)
}

func TestShowTrackingHistory(t *testing.T) {
	env := newTestEnv(t)
	env.tracking.EXPECT().ListByTrackingID(gomock.Any(), "TRK-1").
		Return([]trackingModel.Event{{TrackingID: "TRK-1", Status: "created"}}, nil)

	resp, body := env.do(t, "GET", "/tracking/TRK-1", "")
	expectStatus(t, resp, body, fiber.StatusOK)
}

func TestListRiders(t *testing.T) {
	env := newTestEnv(t)
	env.riders.EXPECT().List(gomock.Any(), repositories.RiderFilter{Status: "Pending", Search: "rahim"}).
		Return([]riderModel.Rider{}, nil)

	resp, body := env.do(t, "GET", "/riders?status=Pending&search=rahim", "")
	expectStatus(t, resp, body, fiber.StatusOK)
}

func TestApplyRiderForcesPending(t *testing.T) {
	env := newTestEnv(t)

	env.riders.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *riderModel.Rider) (primitive.ObjectID, error) {
			if r.Status != riderModel.StatusPending {
				t.Errorf("status = %q, want pending", r.Status)
			}
			if r.RequestedAt.IsZero() {
				t.Error("requested_at not stamped")
			}
			return primitive.NewObjectID(), nil
		})

	resp, body := env.do(t, "POST", "/riders", `{
		"name":"Rahim","email":"rahim@example.com","age":25,"phone":"017","nid":"1234",
		"region":"Dhaka","district":"Dhaka","bike_registration":"DHA-1","status":"approved"
	}`)
	expectStatus(t, resp, body, fiber.StatusCreated)
}

func TestUpdateRiderStatus(t *testing.T) {
	env := newTestEnv(t)
	id := primitive.NewObjectID()

	gomock.InOrder(
		env.riders.EXPECT().UpdateStatus(gomock.Any(), id, riderModel.StatusApproved, gomock.Any()).Return(riderModel.StatusPending, nil),
		env.users.EXPECT().SetRoleByEmail(gomock.Any(), "rahim@example.com", constants.RoleRider).Return(int64(1), nil),
	)

	resp, body := env.do(t, "PATCH", "/riders/"+id.Hex(), `{"status":"approved","email":"rahim@example.com"}`)
	expectStatus(t, resp, body, fiber.StatusOK)

	out := decode(t, body)
	if out["riderUpdated"] != true || out["userUpdated"] != true {
		t.Errorf("body = %v", out)
	}
}

func TestUpdateRiderStatusErrors(t *testing.T) {
	env := newTestEnv(t)
	id := primitive.NewObjectID()

	resp, body := env.do(t, "PATCH", "/riders/"+id.Hex(), `{"status":"approved"}`)
	expectStatus(t, resp, body, fiber.StatusBadRequest)

	resp, body = env.do(t, "PATCH", "/riders/"+id.Hex(), `{"status":"promoted"}`)
	expectStatus(t, resp, body, fiber.StatusBadRequest)

	resp, body = env.do(t, "PATCH", "/riders/nope", `{"status":"rejected"}`)
	expectStatus(t, resp, body, fiber.StatusBadRequest)

	env.riders.EXPECT().UpdateStatus(gomock.Any(), id, riderModel.StatusRejected, gomock.Any()).
		Return(riderModel.Status(""), repositories.ErrNotFound)
	resp, body = env.do(t, "PATCH", "/riders/"+id.Hex(), `{"status":"rejected"}`)
	expectStatus(t, resp, body, fiber.StatusNotFound)
}

func TestStoreUserForcesRole(t *testing.T) {
	env := newTestEnv(t)

	env.users.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *userModel.User) (primitive.ObjectID, error) {
			if u.Role != constants.RoleUser {
				t.Errorf("role = %q, want user", u.Role)
			}
			return primitive.NewObjectID(), nil
		})

	resp, body := env.do(t, "POST", "/users", `{"email":"new@example.com","name":"New","role":"admin"}`)
	expectStatus(t, resp, body, fiber.StatusCreated)
}

func TestUserRole(t *testing.T) {
	env := newTestEnv(t)

	env.users.EXPECT().FindByEmail(gomock.Any(), "rahim@example.com").
		Return(&userModel.User{Email: "rahim@example.com", Role: constants.RoleRider}, nil)
	resp, body := env.do(t, "GET", "/users/rahim@example.com/role", "")
	expectStatus(t, resp, body, fiber.StatusOK)
	if got := decode(t, body)["role"]; got != constants.RoleRider {
		t.Errorf("role = %v", got)
	}

	env.users.EXPECT().FindByEmail(gomock.Any(), "ghost@example.com").Return(nil, repositories.ErrNotFound)
	resp, body = env.do(t, "GET", "/users/ghost@example.com/role", "")
	expectStatus(t, resp, body, fiber.StatusNotFound)
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, "GET", "/nothing-here", "")
	expectStatus(t, resp, body, fiber.StatusNotFound)
}
