package timeentry

import (
	"go-hrpay/internal/middleware"
	"go-hrpay/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
) {
	entries := r.Group("/time-entries")

	entries.Use(middleware.AuthMiddleware())

	{
		entries.POST("/clock-in", h.ClockIn)
		entries.POST("/clock-out", h.ClockOut)
		entries.POST("", middleware.RBACAuthorize(rbacService, "timeentry", "create"), h.Create)
		entries.GET("/:id", middleware.RBACAuthorize(rbacService, "timeentry", "read"), h.GetById)
		entries.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "timeentry", "approve"), h.Approve)
		entries.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "timeentry", "approve"), h.Reject)
	}

	employees := r.Group("/employees/:id/time-entries")
	employees.Use(middleware.AuthMiddleware())
	employees.GET("", middleware.RBACAuthorize(rbacService, "timeentry", "read"), h.GetByEmployee)
}
