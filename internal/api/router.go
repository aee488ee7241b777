package api

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/liftform/shiftcraft/internal/repository"
	"github.com/liftform/shiftcraft/internal/service"
)

// Router owns the Echo engine and every registered route.
type Router struct {
	echo     *echo.Echo
	handlers *Handlers
}

// NewRouter builds a Router over db and schedule, registering every route.
func NewRouter(db repository.Database, schedule service.ScheduleService) *Router {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.PATCH},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	r := &Router{
		echo:     e,
		handlers: NewHandlers(db, schedule),
	}
	r.registerRoutes()
	return r
}

func (r *Router) registerRoutes() {
	r.echo.GET("/api/health", r.handlers.Health)
	r.echo.GET("/api/health/db", r.handlers.HealthDB)

	employees := r.echo.Group("/api/employees")
	employees.POST("", r.handlers.CreateEmployee)
	employees.GET("", r.handlers.ListEmployees)
	employees.GET("/:id", r.handlers.GetEmployee)
	employees.PUT("/:id", r.handlers.UpdateEmployee)
	employees.DELETE("/:id", r.handlers.DeleteEmployee)
	employees.GET("/:employeeID/absences", r.handlers.ListAbsencesForEmployee)
	employees.GET("/:employeeID/availability", r.handlers.ListAvailabilityForEmployee)
	employees.PUT("/:employeeID/availability", r.handlers.UpsertAvailability)

	shiftTemplates := r.echo.Group("/api/shift-templates")
	shiftTemplates.POST("", r.handlers.CreateShiftTemplate)
	shiftTemplates.GET("", r.handlers.ListShiftTemplates)
	shiftTemplates.GET("/:id", r.handlers.GetShiftTemplate)
	shiftTemplates.PUT("/:id", r.handlers.UpdateShiftTemplate)
	shiftTemplates.DELETE("/:id", r.handlers.DeleteShiftTemplate)

	coverageRules := r.echo.Group("/api/coverage-rules")
	coverageRules.POST("", r.handlers.CreateCoverageRule)
	coverageRules.GET("", r.handlers.ListCoverageRules)
	coverageRules.GET("/:id", r.handlers.GetCoverageRule)
	coverageRules.PUT("/:id", r.handlers.UpdateCoverageRule)
	coverageRules.DELETE("/:id", r.handlers.DeleteCoverageRule)

	absences := r.echo.Group("/api/absences")
	absences.POST("", r.handlers.CreateAbsence)
	absences.GET("/:id", r.handlers.GetAbsence)
	absences.DELETE("/:id", r.handlers.DeleteAbsence)

	schedules := r.echo.Group("/api/schedules")
	schedules.POST("/generate", r.handlers.GenerateSchedule)
	schedules.GET("/:id", r.handlers.GetSchedule)
	schedules.POST("/:id/validate", r.handlers.ValidateSchedule)
}

// Echo exposes the underlying engine, primarily so tests can drive it with
// httptest without starting a real listener.
func (r *Router) Echo() *echo.Echo {
	return r.echo
}

// Start runs the HTTP server at addr, blocking until it stops.
func (r *Router) Start(addr string) error {
	return r.echo.Start(addr)
}

// Shutdown gracefully closes the HTTP server, giving in-flight requests up
// to 10 seconds to finish.
func (r *Router) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.echo.Shutdown(ctx)
}
