package tracking

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcel-delivery/errs"
	"parcel-delivery/logger"
	trackingModel "parcel-delivery/models/tracking"
	"parcel-delivery/repositories"
	trackingTypes "parcel-delivery/types/tracking"
	"parcel-delivery/validation"
)

type TrackingController struct {
	Events repositories.TrackingRepository
}

func NewTrackingController(events repositories.TrackingRepository) *TrackingController {
	return &TrackingController{Events: events}
}

// Store appends a tracking event; the referenced parcel is not checked
func (tc *TrackingController) Store(c *fiber.Ctx) error {
	var req trackingTypes.StoreTrackingRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return err
	}

	event := trackingModel.Event{
		TrackingID: req.TrackingID,
		Status:     req.Status,
		Message:    req.Message,
		UpdatedBy:  req.UpdatedBy,
		Time:       time.Now().UTC(),
	}
	if req.ParcelID != "" {
		parcelID, err := primitive.ObjectIDFromHex(req.ParcelID)
		if err != nil {
			return errs.NewBadRequestError("Invalid parcel ID.", nil)
		}
		event.ParcelID = &parcelID
	}

	id, err := tc.Events.Insert(c.UserContext(), &event)
	if err != nil {
		logger.Error("Failed to store tracking event", err)
		return errs.NewInternalServerError()
	}

	return c.Status(fiber.StatusCreated).JSON(trackingTypes.StoreTrackingResponse{
		Success:    true,
		InsertedID: id,
	})
}

// Show returns the history of one tracking id, oldest first
func (tc *TrackingController) Show(c *fiber.Ctx) error {
	events, err := tc.Events.ListByTrackingID(c.UserContext(), c.Params("trackingId"))
	if err != nil {
		logger.Error("Failed to fetch tracking events", err)
		return errs.NewInternalServerError()
	}
	return c.JSON(events)
}
