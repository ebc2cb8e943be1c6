package registrations

import (
	apphttp "github.com/regdesk/regdesk-backend/internal/http"
	"github.com/regdesk/regdesk-backend/internal/http/handlers"
)

// Module exposes the public registration intake together with the admin-side
// listing, export, and stats endpoints. Stats lives here because the snapshot
// is keyed off registrations even though it folds payment totals in.
func Module(registrationHandler *handlers.RegistrationHandler, adminHandler *handlers.AdminHandler) apphttp.Module {
	return apphttp.Module{
		Name: "registrations",
		Kind: apphttp.KindSimple,
		Routes: func(s apphttp.Surfaces) {
			s.API.POST("/registrations", registrationHandler.Create)

			s.Admin.GET("/registrations", adminHandler.ListRegistrations)
			s.Admin.GET("/export/registrations", adminHandler.ExportRegistrations)
			s.Admin.GET("/stats", adminHandler.Stats)
		},
	}
}
