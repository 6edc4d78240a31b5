package payrollconfig

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
	cfg := r.Group("/payroll-config")

	cfg.Use(middleware.AuthMiddleware())

	{
		cfg.GET("", middleware.RBACAuthorize(rbacService, "payrollconfig", "read"), h.Get)
		cfg.PUT("", middleware.RBACAuthorize(rbacService, "payrollconfig", "update"), h.Update)
	}
}
