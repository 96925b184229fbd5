package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.With(middlewares.Authenticate).Get("/", appointmentController.FindAppointments)
	router.With(middlewares.Authenticate).Get("/all", appointmentController.FindAllAppointments)
	router.With(middlewares.Authenticate).Post("/", appointmentController.CreateAppointment)
	router.With(middlewares.Authenticate).Post("/{appointment_id}/cancel", appointmentController.CancelAppointment)
	router.With(middlewares.Authenticate).Post("/{appointment_id}/complete", appointmentController.CompleteAppointment)
}
