package payroll

import (
	"go-hrpay/internal/middleware"
	"go-hrpay/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	periods := r.Group("/payroll-periods")

	periods.Use(middleware.AuthMiddleware())

	{
		periods.POST("", middleware.RBACAuthorize(rbacService, "payroll", "create"), h.Create)
		periods.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.GetAll)
		periods.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.GetById)

		periods.POST("/:id/process",
			middleware.RBACAuthorize(rbacService, "payroll", "process"),
			middleware.RateLimitByUser(0.1, 1),
			middleware.Idempotency(rdb),
			h.Process,
		)
		periods.POST("/:id/finalize", middleware.RBACAuthorize(rbacService, "payroll", "process"), h.Finalize)
		periods.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "payroll", "update"), h.Cancel)
	}
}
