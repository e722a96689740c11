package handler

import (
	"qr-slot-allocator/internal/adapter/http/middleware"
	redisStore "qr-slot-allocator/internal/adapter/storage/redis"
	"qr-slot-allocator/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AllocatorSvc   ports.AllocatorService
	Registry       ports.SlotRegistry
	InsightsSvc    ports.InsightsService
	SchedulerSvc   ports.SchedulerService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore          // nil = rate limiting disabled
	RateLimitRules map[string]middleware.RateLimitRule // nil = defaults
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(64 << 10))

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := deps.RateLimitRules
	if rules == nil {
		rules = middleware.DefaultRateLimitRules()
	}

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimitStore == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	// --- Attendee routes ---
	allocHandler := NewAllocationHandler(deps.AllocatorSvc)
	events := v1.Group("/events/:event_id", jwtAuth)
	{
		events.POST("/allocations", rl(middleware.GroupAllocations), allocHandler.Allocate)
	}

	// --- Admin routes ---
	adminHandler := NewAdminHandler(deps.Registry, deps.InsightsSvc, deps.SchedulerSvc)
	admin := v1.Group("/admin", jwtAuth, middleware.RequireAdmin(), rl(middleware.GroupAdmin))
	{
		admin.POST("/maintenance", adminHandler.RunMaintenance)

		event := admin.Group("/events/:event_id")
		event.GET("/slots", adminHandler.ListSlots)
		event.PUT("/slots/:slot_id", adminHandler.RegisterSlot)
		event.POST("/slots/:slot_id/disable", adminHandler.DisableSlot)
		event.POST("/slots/:slot_id/enable", adminHandler.EnableSlot)
		event.POST("/slots/:slot_id/reset", adminHandler.ResetSlot)
		event.POST("/reset", adminHandler.ResetAll)
		event.GET("/insights", adminHandler.GetInsights)
	}

	return r
}
