package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"drivehub/internal/auth"
	"drivehub/internal/config"
	"drivehub/internal/handler"
	"drivehub/internal/middleware"
	"drivehub/internal/repository"
)

// Register wires routes and middleware. Every admin-only route carries the
// same LoadUser + RequireAdmin chain; none is gated selectively.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userRepo repository.UserRepository,
	userHandler *handler.UserHandler,
	carHandler *handler.CarHandler,
	rentalHandler *handler.RentalHandler,
	paymentHandler *handler.PaymentHandler,
	reviewHandler *handler.ReviewHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/users/register", userHandler.Register)
	api.POST("/users/login", userHandler.Login)
	api.GET("/cars", carHandler.ListCars)
	api.GET("/cars/:id", carHandler.GetCar)
	api.GET("/cars/:id/reviews", reviewHandler.ListReviews)

	// Authenticated routes: echo-jwt validates signature and expiry, LoadUser
	// resolves the subject to a live user record.
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(cfg.JWTSecret),
			NewClaimsFunc: func(c echo.Context) jwt.Claims {
				return new(auth.Claims)
			},
		}),
		middleware.LoadUser(userRepo),
	)

	secured.GET("/users/:id", userHandler.GetUser)
	secured.PUT("/users/:id", userHandler.UpdateUser)

	secured.POST("/cars/:id/reviews", reviewHandler.CreateReview)

	secured.POST("/rentals", rentalHandler.CreateRental)
	secured.GET("/rentals", rentalHandler.ListRentals)
	secured.GET("/rentals/:id", rentalHandler.GetRental)
	secured.GET("/rentals/user/:userId", rentalHandler.GetRentalsForUser)
	secured.POST("/rentals/:id/pay", paymentHandler.PayRental)
	secured.GET("/payments", paymentHandler.ListPayments)

	// Admin-only routes
	admin := secured.Group("", middleware.RequireAdmin)
	admin.GET("/users", userHandler.ListUsers)
	admin.POST("/cars", carHandler.CreateCar)
	admin.PUT("/cars/:id", carHandler.UpdateCar)
	admin.DELETE("/cars/:id", carHandler.DeleteCar)
	admin.PUT("/rentals/accept/:id", rentalHandler.AcceptRental)
	admin.PUT("/rentals/reject/:id", rentalHandler.RejectRental)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
