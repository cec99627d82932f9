package payment

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"parcel-delivery/cache"
	"parcel-delivery/errs"
	httpServices "parcel-delivery/httpServices/stripe"
	"parcel-delivery/logger"
	paymentService "parcel-delivery/services/payment"
	paymentTypes "parcel-delivery/types/payment"
	"parcel-delivery/validation"
)

const idempotencyHeader = "Idempotency-Key"

// PaymentController handles payment records and payment intents
type PaymentController struct {
	Payments *paymentService.Service
	Gateway  httpServices.Gateway
	// Idempotency is optional; without it the Idempotency-Key header is ignored.
	Idempotency cache.IdempotencyStore
}

func NewPaymentController(payments *paymentService.Service, gateway httpServices.Gateway, idempotency cache.IdempotencyStore) *PaymentController {
	return &PaymentController{
		Payments:    payments,
		Gateway:     gateway,
		Idempotency: idempotency,
	}
}

// Index lists payments newest first, filtered by payer email and paid day
func (pc *PaymentController) Index(c *fiber.Ctx) error {
	var q paymentTypes.ListPaymentsQuery
	if err := validation.BindQueryAndValidate(c, &q); err != nil {
		return err
	}

	payments, err := pc.Payments.List(c.UserContext(), q)
	if err != nil {
		logger.Error("Failed to fetch payments", err)
		return errs.NewInternalServerError()
	}
	return c.JSON(payments)
}

// Store records a payment and marks its parcel as paid
func (pc *PaymentController) Store(c *fiber.Ctx) error {
	var req paymentTypes.RecordPaymentRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return err
	}

	key := strings.TrimSpace(c.Get(idempotencyHeader))
	useKey := key != "" && pc.Idempotency != nil
	if useKey {
		claimed, err := pc.Idempotency.Claim(c.UserContext(), key)
		if err != nil {
			logger.Error("Failed to claim idempotency key", err)
			return errs.NewInternalServerError()
		}
		if !claimed {
			return errs.NewConflictError("A payment with this Idempotency-Key has already been submitted")
		}
	}

	result, err := pc.Payments.Record(c.UserContext(), req)
	if err != nil {
		if useKey {
			if releaseErr := pc.Idempotency.Release(c.UserContext(), key); releaseErr != nil {
				logger.Error("Failed to release idempotency key", releaseErr)
			}
		}
		if errors.Is(err, paymentService.ErrInvalidParcelID) {
			return errs.NewBadRequestError("Invalid parcel ID.", nil)
		}
		logger.Error("Failed to record payment", err)
		return errs.NewInternalServerError()
	}

	message := "Payment recorded and parcel marked as paid"
	if !result.ParcelUpdated {
		message = "Payment recorded, but the parcel was not found or is already paid"
	}

	return c.Status(fiber.StatusCreated).JSON(paymentTypes.RecordPaymentResponse{
		Message:       message,
		InsertedID:    result.InsertedID,
		ParcelUpdated: result.ParcelUpdated,
	})
}

// CreateIntent asks the payment gateway for a card payment intent
func (pc *PaymentController) CreateIntent(c *fiber.Ctx) error {
	var req paymentTypes.CreateIntentRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return err
	}

	secret, err := pc.Gateway.CreatePaymentIntent(c.UserContext(), httpServices.PaymentIntentRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
	})
	if err != nil {
		logger.Error("Failed to create payment intent", err)
		var gwErr *httpServices.GatewayError
		if errors.As(err, &gwErr) {
			return errs.NewInternalServerErrorWithMessage(gwErr.Message)
		}
		return errs.NewInternalServerError()
	}

	return c.JSON(paymentTypes.CreateIntentResponse{ClientSecret: secret})
}
