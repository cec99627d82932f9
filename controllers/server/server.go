package server

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"parcel-delivery/constants"
	"parcel-delivery/errs"
	"parcel-delivery/logger"
	"parcel-delivery/types"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type ServerController struct {
	Store Pinger
}

func NewServerController(store Pinger) *ServerController {
	return &ServerController{Store: store}
}

// Home serves the greeting
func (sc *ServerController) Home(c *fiber.Ctx) error {
	return c.SendString(constants.Greeting)
}

// Health reports whether the document store answers a ping
func (sc *ServerController) Health(c *fiber.Ctx) error {
	if err := sc.Store.Ping(c.UserContext()); err != nil {
		logger.Error("Health check failed", err)
		return errs.NewServiceUnavailableError("Document store is unreachable")
	}
	return c.JSON(types.ApiResponse{
		Message: "ok",
		Status:  fiber.StatusOK,
	})
}
