package rider

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"parcel-delivery/errs"
	"parcel-delivery/logger"
	riderModel "parcel-delivery/models/rider"
	"parcel-delivery/repositories"
	riderService "parcel-delivery/services/rider"
	"parcel-delivery/types"
	riderTypes "parcel-delivery/types/rider"
	"parcel-delivery/utils"
	"parcel-delivery/validation"
)

// RiderController handles rider applications and approvals
type RiderController struct {
	Riders  repositories.RiderRepository
	Service *riderService.Service
}

func NewRiderController(riders repositories.RiderRepository, service *riderService.Service) *RiderController {
	return &RiderController{
		Riders:  riders,
		Service: service,
	}
}

// Index lists rider applications, filtered by status and name
func (rc *RiderController) Index(c *fiber.Ctx) error {
	var q riderTypes.ListRidersQuery
	if err := validation.BindQueryAndValidate(c, &q); err != nil {
		return err
	}

	riders, err := rc.Riders.List(c.UserContext(), repositories.RiderFilter{
		Status: q.Status,
		Search: q.Search,
	})
	if err != nil {
		logger.Error("Failed to fetch riders", err)
		return errs.NewInternalServerError()
	}
	return c.JSON(riders)
}

// Store files a rider application; it always starts out pending
func (rc *RiderController) Store(c *fiber.Ctx) error {
	var req riderTypes.ApplyRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return err
	}

	rider := req.ToModel(time.Now().UTC())
	id, err := rc.Riders.Insert(c.UserContext(), &rider)
	if err != nil {
		logger.Error("Failed to store rider application", err)
		return errs.NewInternalServerError()
	}

	logger.Success("Rider application received: " + id.Hex())
	return c.Status(fiber.StatusCreated).JSON(types.InsertResponse{
		Acknowledged: true,
		InsertedID:   id,
	})
}

// UpdateStatus moves a rider to a new status; approving also promotes the matching user
func (rc *RiderController) UpdateStatus(c *fiber.Ctx) error {
	id, err := utils.ParseObjectIDParam(c, "id", "rider")
	if err != nil {
		return err
	}

	var req riderTypes.UpdateStatusRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := rc.Service.SetStatus(c.UserContext(), id, riderModel.Status(req.Status), req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return errs.NewNotFoundError("Rider not found")
	}
	if err != nil {
		logger.Error("Failed to update rider status", err)
		return errs.NewInternalServerError()
	}

	return c.JSON(riderTypes.UpdateStatusResponse{
		Message:      "Rider status updated to " + req.Status,
		RiderUpdated: result.RiderUpdated,
		UserUpdated:  result.UserUpdated,
	})
}
