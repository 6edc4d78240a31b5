package tax

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
	taxes := r.Group("/tax")

	taxes.Use(middleware.AuthMiddleware())

	{
		taxes.PUT("/schedules", middleware.RBACAuthorize(rbacService, "tax", "update"), h.SetSchedule)
		taxes.GET("/schedules/:country/:year", middleware.RBACAuthorize(rbacService, "tax", "read"), h.GetSchedule)
		taxes.POST("/calculate", middleware.RBACAuthorize(rbacService, "tax", "read"), h.Calculate)
	}
}
