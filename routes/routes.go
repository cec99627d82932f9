package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"parcel-delivery/cache"
	"parcel-delivery/controllers/parcel"
	"parcel-delivery/controllers/payment"
	"parcel-delivery/controllers/rider"
	"parcel-delivery/controllers/server"
	"parcel-delivery/controllers/tracking"
	"parcel-delivery/controllers/user"
	"parcel-delivery/errs"
	httpServices "parcel-delivery/httpServices/stripe"
	"parcel-delivery/logger"
	"parcel-delivery/middleware"
	"parcel-delivery/repositories"
	paymentService "parcel-delivery/services/payment"
	riderService "parcel-delivery/services/rider"
)

type Options struct {
	CORSOrigins string
	// AuditLog receives a copy of every request; nil disables it.
	AuditLog *logger.AsyncLogger
}

// Dependencies are the shared clients handed to the controllers.
type Dependencies struct {
	Store       server.Pinger
	Parcels     repositories.ParcelRepository
	Payments    repositories.PaymentRepository
	Tracking    repositories.TrackingRepository
	Riders      repositories.RiderRepository
	Users       repositories.UserRepository
	Gateway     httpServices.Gateway
	Idempotency cache.IdempotencyStore
}

func NewApp(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       50 * 1024 * 1024, // 50MB body limit
		UnescapePath:    true,
		ErrorHandler:    errs.Handler,
	})

	origins := opts.CORSOrigins
	if origins == "" {
		origins = "*"
	}

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLog(opts.AuditLog))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
		// fiber refuses credentials together with a wildcard origin
		AllowCredentials: origins != "*",
	}))

	return app
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	serverController := server.NewServerController(deps.Store)
	parcelController := parcel.NewParcelController(deps.Parcels)
	paymentController := payment.NewPaymentController(
		paymentService.NewPaymentService(deps.Payments, deps.Parcels),
		deps.Gateway,
		deps.Idempotency,
	)
	trackingController := tracking.NewTrackingController(deps.Tracking)
	riderController := rider.NewRiderController(deps.Riders, riderService.NewRiderService(deps.Riders, deps.Users))
	userController := user.NewUserController(deps.Users)

	// Index route
	app.Get("/", serverController.Home)
	app.Get("/health", serverController.Health)

	/*=============================================================================
	| Parcel Routes
	===============================================================================*/
	parcels := app.Group("/parcels")
	parcels.Get("/", parcelController.Index)
	parcels.Post("/", parcelController.Store)
	parcels.Get("/:id", parcelController.Show)
	parcels.Delete("/:id", parcelController.Destroy)

	/*=============================================================================
	| Payment Routes
	===============================================================================*/
	payments := app.Group("/payments")
	payments.Get("/", paymentController.Index)
	payments.Post("/", paymentController.Store)
	app.Post("/payment-intent", paymentController.CreateIntent)

	/*=============================================================================
	| Tracking Routes
	===============================================================================*/
	app.Post("/tracking", trackingController.Store)
	app.Get("/tracking/:trackingId", trackingController.Show)

	/*=============================================================================
	| Rider Routes
	===============================================================================*/
	riders := app.Group("/riders")
	riders.Get("/", riderController.Index)
	riders.Post("/", riderController.Store)
	riders.Patch("/:id", riderController.UpdateStatus)

	/*=============================================================================
	| User Routes
	===============================================================================*/
	users := app.Group("/users")
	users.Post("/", userController.Store)
	users.Get("/:email/role", userController.Role)
}
