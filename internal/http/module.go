package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/regdesk/regdesk-backend/internal/pkg/logger"
)

type ModuleKind int

const (
	// KindSimple contributes a single route table.
	KindSimple ModuleKind = iota
	// KindWithHook contributes a route table plus a post-registration hook,
	// used by modules that subscribe to process-wide events once their own
	// routes exist.
	KindWithHook
	// KindDual contributes separate auth and admin route tables; auth routes
	// are mounted first so admin guards can rely on them being reachable.
	KindDual
)

// Surfaces are the router groups a module may mount routes on.
type Surfaces struct {
	// API is the public surface under /api.
	API *gin.RouterGroup
	// AdminAuth is the unauthenticated admin login surface under /api/admin/auth.
	AdminAuth *gin.RouterGroup
	// Admin is the bearer-token guarded surface under /api/admin.
	Admin *gin.RouterGroup
}

type RouteFunc func(s Surfaces)

type HookFunc func(engine *gin.Engine) error

// Module is the single tagged-variant route descriptor every feature domain
// exposes. Dispatch in RegisterAll is exhaustive over Kind.
type Module struct {
	Name          string
	Kind          ModuleKind
	Routes        RouteFunc
	AuthRoutes    RouteFunc
	AdminRoutes   RouteFunc
	AfterRegister HookFunc
}

// Result records the outcome of one module's registration.
type Result struct {
	Module     string
	Registered bool
	Skipped    bool
	Err        error
}

// RegisterAll mounts every module's routes onto the shared router. A panic or
// error from one module is recovered, logged once with the module name, and
// recorded; registration continues with the next module and nothing already
// mounted is rolled back. Called exactly once at boot, before the server
// accepts connections.
func RegisterAll(s Surfaces, engine *gin.Engine, modules []Module, log *logger.Logger) []Result {
	results := make([]Result, 0, len(modules))
	for _, m := range modules {
		res := Result{Module: m.Name}
		err := registerOne(s, engine, m, &res)
		if err != nil {
			res.Err = err
			log.Error("Module registration failed", "module", m.Name, "error", err)
		} else if res.Skipped {
			log.Warn("Module registered nothing", "module", m.Name)
		} else {
			res.Registered = true
			log.Info("Module registered", "module", m.Name)
		}
		results = append(results, res)
	}
	return results
}

func registerOne(s Surfaces, engine *gin.Engine, m Module, res *Result) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during registration: %v", r)
		}
	}()

	switch m.Kind {
	case KindSimple:
		if m.Routes == nil {
			res.Skipped = true
			return nil
		}
		m.Routes(s)
	case KindWithHook:
		if m.Routes == nil {
			res.Skipped = true
			return nil
		}
		m.Routes(s)
		if m.AfterRegister != nil {
			if err := m.AfterRegister(engine); err != nil {
				return fmt.Errorf("after-register hook: %w", err)
			}
		}
	case KindDual:
		if m.AuthRoutes == nil && m.AdminRoutes == nil {
			res.Skipped = true
			return nil
		}
		if m.AuthRoutes != nil {
			m.AuthRoutes(s)
		}
		if m.AdminRoutes != nil {
			m.AdminRoutes(s)
		}
	default:
		res.Skipped = true
	}
	return nil
}
