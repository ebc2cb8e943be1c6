package payments

import (
	"github.com/gin-gonic/gin"

	"github.com/regdesk/regdesk-backend/internal/events"
	apphttp "github.com/regdesk/regdesk-backend/internal/http"
	"github.com/regdesk/regdesk-backend/internal/http/handlers"
	"github.com/regdesk/regdesk-backend/internal/services"
)

// Module exposes the provider callback plus the admin payment listing and
// export. Its hook subscribes the registration listener to payment-completed
// events, after its own routes exist.
func Module(registrationHandler *handlers.RegistrationHandler, adminHandler *handlers.AdminHandler, bus *events.Bus, registrationService services.RegistrationService) apphttp.Module {
	return apphttp.Module{
		Name: "payments",
		Kind: apphttp.KindWithHook,
		Routes: func(s apphttp.Surfaces) {
			s.API.POST("/payments/notify", registrationHandler.PaymentNotify)

			s.Admin.GET("/payments", adminHandler.ListPayments)
			s.Admin.GET("/export/payments", adminHandler.ExportPayments)
		},
		AfterRegister: func(_ *gin.Engine) error {
			bus.Subscribe(events.TopicPaymentCompleted, registrationService.MarkRegistrationPaid)
			return nil
		},
	}
}
