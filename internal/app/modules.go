package app

import (
	"github.com/regdesk/regdesk-backend/internal/events"
	apphttp "github.com/regdesk/regdesk-backend/internal/http"
	"github.com/regdesk/regdesk-backend/internal/modules/payments"
	"github.com/regdesk/regdesk-backend/internal/modules/registrations"
	"github.com/regdesk/regdesk-backend/internal/modules/users"
)

// moduleManifest is the single static list of feature modules. Adding a domain
// means adding its constructor here; nothing is discovered at runtime.
func moduleManifest(handlers Handlers, services Services, bus *events.Bus) []apphttp.Module {
	return []apphttp.Module{
		registrations.Module(handlers.Registration, handlers.Admin),
		payments.Module(handlers.Registration, handlers.Admin, bus, services.Registration),
		users.Module(handlers.Auth, handlers.Users),
	}
}
