package timesheet

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
	timesheets := r.Group("/timesheets")

	timesheets.Use(middleware.AuthMiddleware())

	{
		timesheets.POST("/calculate", middleware.RBACAuthorize(rbacService, "timesheet", "update"), h.Calculate)
		timesheets.GET("/:id", middleware.RBACAuthorize(rbacService, "timesheet", "read"), h.GetById)
		timesheets.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "timesheet", "update"), h.Submit)
		timesheets.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "timesheet", "approve"), h.Approve)
		timesheets.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "timesheet", "approve"), h.Reject)
	}

	employees := r.Group("/employees/:id/timesheets")
	employees.Use(middleware.AuthMiddleware())
	employees.GET("", middleware.RBACAuthorize(rbacService, "timesheet", "read"), h.GetByEmployee)
}
