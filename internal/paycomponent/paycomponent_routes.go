package paycomponent

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
	deductions := r.Group("/deduction-types")
	deductions.Use(middleware.AuthMiddleware())
	{
		deductions.POST("", middleware.RBACAuthorize(rbacService, "paycomponent", "create"), h.CreateDeductionType)
		deductions.GET("", middleware.RBACAuthorize(rbacService, "paycomponent", "read"), h.GetDeductionTypes)
		deductions.GET("/:id", middleware.RBACAuthorize(rbacService, "paycomponent", "read"), h.GetDeductionTypeById)
		deductions.PUT("/:id", middleware.RBACAuthorize(rbacService, "paycomponent", "update"), h.UpdateDeductionType)
		deductions.DELETE("/:id", middleware.RBACAuthorize(rbacService, "paycomponent", "delete"), h.DeleteDeductionType)
	}

	bonuses := r.Group("/bonus-types")
	bonuses.Use(middleware.AuthMiddleware())
	{
		bonuses.POST("", middleware.RBACAuthorize(rbacService, "paycomponent", "create"), h.CreateBonusType)
		bonuses.GET("", middleware.RBACAuthorize(rbacService, "paycomponent", "read"), h.GetBonusTypes)
		bonuses.DELETE("/:id", middleware.RBACAuthorize(rbacService, "paycomponent", "delete"), h.DeleteBonusType)
	}
}
