package router

import (
	"appointease/core/middleware"
	"appointease/modules/booking/controller"

	"github.com/labstack/echo/v4"
)

type BookingRouter struct {
	BookingController *controller.BookingController
}

func NewBookingRouter(bookingController *controller.BookingController) *BookingRouter {
	return &BookingRouter{BookingController: bookingController}
}

func (r *BookingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	publicRoutes := v1.Group("/public")
	publicRoutes.GET("/booking/:slug", r.BookingController.GetAvailability)

	privateRoutes := v1.Group("/private")
	booking := privateRoutes.Group("/booking", mw.AuthMiddleware())
	booking.GET("/url/:templateId", r.BookingController.GetPersonalBookingURL)
}
