package parcel

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"parcel-delivery/errs"
	"parcel-delivery/logger"
	"parcel-delivery/repositories"
	"parcel-delivery/types"
	parcelTypes "parcel-delivery/types/parcel"
	"parcel-delivery/utils"
	"parcel-delivery/validation"
)

// ParcelController handles parcel-related HTTP requests
type ParcelController struct {
	Parcels repositories.ParcelRepository
}

func NewParcelController(parcels repositories.ParcelRepository) *ParcelController {
	return &ParcelController{Parcels: parcels}
}

// Index lists parcels, optionally narrowed to an owner and a parcel type
func (pc *ParcelController) Index(c *fiber.Ctx) error {
	var q parcelTypes.ListParcelsQuery
	if err := validation.BindQueryAndValidate(c, &q); err != nil {
		return err
	}

	parcels, err := pc.Parcels.List(c.UserContext(), repositories.ParcelFilter{
		OwnerEmail: q.Email,
		ParcelType: q.ParcelType,
	})
	if err != nil {
		logger.Error("Failed to fetch parcels", err)
		return errs.NewInternalServerError()
	}
	return c.JSON(parcels)
}

// Show returns a single parcel by id
func (pc *ParcelController) Show(c *fiber.Ctx) error {
	id, err := utils.ParseObjectIDParam(c, "id", "parcel")
	if err != nil {
		return err
	}

	parcel, err := pc.Parcels.FindByID(c.UserContext(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		return errs.NewNotFoundError("Parcel not found")
	}
	if err != nil {
		logger.Error("Failed to fetch parcel "+id.Hex(), err)
		return errs.NewInternalServerError()
	}
	return c.JSON(parcel)
}

// Store creates a parcel in the Unpaid state
func (pc *ParcelController) Store(c *fiber.Ctx) error {
	var req parcelTypes.StoreParcelRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return err
	}

	parcel := req.ToModel(time.Now().UTC())
	id, err := pc.Parcels.Insert(c.UserContext(), &parcel)
	if err != nil {
		logger.Error("Failed to create parcel", err)
		return errs.NewInternalServerError()
	}

	logger.Success("Parcel created: " + id.Hex())
	return c.Status(fiber.StatusCreated).JSON(types.InsertResponse{
		Acknowledged: true,
		InsertedID:   id,
	})
}

// Destroy removes a parcel by id
func (pc *ParcelController) Destroy(c *fiber.Ctx) error {
	id, err := utils.ParseObjectIDParam(c, "id", "parcel")
	if err != nil {
		return err
	}

	deleted, err := pc.Parcels.Delete(c.UserContext(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		return errs.NewNotFoundError("Parcel not found")
	}
	if err != nil {
		logger.Error("Failed to delete parcel "+id.Hex(), err)
		return errs.NewInternalServerError()
	}

	return c.JSON(parcelTypes.DeleteParcelResponse{
		Message:      "Parcel deleted successfully",
		DeletedCount: deleted,
	})
}
