package leave

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
	leaves := r.Group("/leaves")

	leaves.Use(middleware.AuthMiddleware())

	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), h.GetAll)
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), h.Create)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), h.GetById)
		leaves.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave", "update"), h.Update)
		leaves.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "leave", "update"), h.Submit)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), h.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), h.Reject)
		leaves.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave", "update"), h.Cancel)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "delete"), h.Delete)
	}
}
