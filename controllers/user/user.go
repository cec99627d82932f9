package user

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"parcel-delivery/errs"
	"parcel-delivery/logger"
	"parcel-delivery/repositories"
	"parcel-delivery/types"
	userTypes "parcel-delivery/types/user"
	"parcel-delivery/validation"
)

type UserController struct {
	Users repositories.UserRepository
}

func NewUserController(users repositories.UserRepository) *UserController {
	return &UserController{Users: users}
}

// Store registers a user. Emails are not checked for uniqueness.
func (uc *UserController) Store(c *fiber.Ctx) error {
	var req userTypes.StoreUserRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		return err
	}

	user := req.ToModel(time.Now().UTC())
	id, err := uc.Users.Insert(c.UserContext(), &user)
	if err != nil {
		logger.Error("Failed to create user", err)
		return errs.NewInternalServerError()
	}

	return c.Status(fiber.StatusCreated).JSON(types.InsertResponse{
		Acknowledged: true,
		InsertedID:   id,
	})
}

// Role looks up the role of the user with the given email
func (uc *UserController) Role(c *fiber.Ctx) error {
	email := c.Params("email")
	if email == "" {
		return errs.NewBadRequestError("Email is required", nil)
	}

	user, err := uc.Users.FindByEmail(c.UserContext(), email)
	if errors.Is(err, repositories.ErrNotFound) {
		return errs.NewNotFoundError("User not found")
	}
	if err != nil {
		logger.Error("Failed to fetch user role", err)
		return errs.NewInternalServerError()
	}

	return c.JSON(userTypes.RoleResponse{Role: user.Role})
}
