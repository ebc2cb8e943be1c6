package http_test

import (
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apphttp "github.com/regdesk/regdesk-backend/internal/http"
	"github.com/regdesk/regdesk-backend/internal/pkg/logger"
)

func testSurfaces(t *testing.T) (apphttp.Surfaces, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api")
	return apphttp.Surfaces{
		API:       api,
		AdminAuth: api.Group("/admin/auth"),
		Admin:     api.Group("/admin"),
	}, engine
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func get(engine *gin.Engine, path string) int {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	engine.ServeHTTP(rec, req)
	return rec.Code
}

func okHandler(c *gin.Context) { c.Status(nethttp.StatusOK) }

func TestRegisterAllIsolatesPanickingModule(t *testing.T) {
	surfaces, engine := testSurfaces(t)

	modules := []apphttp.Module{
		{
			Name: "first",
			Kind: apphttp.KindSimple,
			Routes: func(s apphttp.Surfaces) {
				s.API.GET("/first", okHandler)
			},
		},
		{
			Name: "broken",
			Kind: apphttp.KindSimple,
			Routes: func(s apphttp.Surfaces) {
				panic("boom")
			},
		},
		{
			Name: "third",
			Kind: apphttp.KindSimple,
			Routes: func(s apphttp.Surfaces) {
				s.API.GET("/third", okHandler)
			},
		},
	}

	results := apphttp.RegisterAll(surfaces, engine, modules, testLogger(t))
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Registered || results[0].Err != nil {
		t.Fatalf("first module should be registered: %+v", results[0])
	}
	if results[1].Err == nil || results[1].Registered {
		t.Fatalf("broken module should be recorded as failed: %+v", results[1])
	}
	if !results[2].Registered || results[2].Err != nil {
		t.Fatalf("third module should be registered: %+v", results[2])
	}

	if code := get(engine, "/api/first"); code != nethttp.StatusOK {
		t.Fatalf("GET /api/first = %d", code)
	}
	if code := get(engine, "/api/third"); code != nethttp.StatusOK {
		t.Fatalf("GET /api/third = %d", code)
	}
}

func TestRegisterAllSkipsEmptyModule(t *testing.T) {
	surfaces, engine := testSurfaces(t)

	results := apphttp.RegisterAll(surfaces, engine, []apphttp.Module{
		{Name: "empty", Kind: apphttp.KindSimple},
	}, testLogger(t))
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !results[0].Skipped || results[0].Registered || results[0].Err != nil {
		t.Fatalf("empty module should be skipped: %+v", results[0])
	}
}

func TestRegisterAllDualMountsBothTables(t *testing.T) {
	surfaces, engine := testSurfaces(t)

	results := apphttp.RegisterAll(surfaces, engine, []apphttp.Module{
		{
			Name: "users",
			Kind: apphttp.KindDual,
			AuthRoutes: func(s apphttp.Surfaces) {
				s.AdminAuth.GET("/probe", okHandler)
			},
			AdminRoutes: func(s apphttp.Surfaces) {
				s.Admin.GET("/users", okHandler)
			},
		},
	}, testLogger(t))
	if !results[0].Registered {
		t.Fatalf("dual module should be registered: %+v", results[0])
	}

	if code := get(engine, "/api/admin/auth/probe"); code != nethttp.StatusOK {
		t.Fatalf("GET /api/admin/auth/probe = %d", code)
	}
	if code := get(engine, "/api/admin/users"); code != nethttp.StatusOK {
		t.Fatalf("GET /api/admin/users = %d", code)
	}
}

func TestRegisterAllRecordsHookFailureAfterMounting(t *testing.T) {
	surfaces, engine := testSurfaces(t)

	hookErr := errors.New("subscribe failed")
	results := apphttp.RegisterAll(surfaces, engine, []apphttp.Module{
		{
			Name: "payments",
			Kind: apphttp.KindWithHook,
			Routes: func(s apphttp.Surfaces) {
				s.API.GET("/payments-probe", okHandler)
			},
			AfterRegister: func(_ *gin.Engine) error { return hookErr },
		},
	}, testLogger(t))
	if results[0].Err == nil {
		t.Fatal("hook failure should be recorded")
	}

	// Already-mounted routes are not rolled back.
	if code := get(engine, "/api/payments-probe"); code != nethttp.StatusOK {
		t.Fatalf("GET /api/payments-probe = %d", code)
	}
}
