package compensation

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
	compensations := r.Group("/employees/:id/compensations")

	compensations.Use(middleware.AuthMiddleware())

	{
		compensations.GET("", middleware.RBACAuthorize(rbacService, "compensation", "read"), h.GetByEmployee)
		compensations.POST("", middleware.RBACAuthorize(rbacService, "compensation", "create"), h.Append)
	}
}
