package workschedule

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
	schedules := r.Group("/work-schedules")

	schedules.Use(middleware.AuthMiddleware())

	{
		schedules.GET("", middleware.RBACAuthorize(rbacService, "workschedule", "read"), h.GetAll)
		schedules.POST("", middleware.RBACAuthorize(rbacService, "workschedule", "create"), h.Create)
		schedules.GET("/:id", middleware.RBACAuthorize(rbacService, "workschedule", "read"), h.GetById)
		schedules.DELETE("/:id", middleware.RBACAuthorize(rbacService, "workschedule", "delete"), h.Delete)
	}
}
