package payslip

import (
	"go-hrpay/internal/middleware"
	"go-hrpay/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	payslips := r.Group("/payslips")

	payslips.Use(middleware.AuthMiddleware())
	payslips.Use(middleware.ExtractUserID())
	payslips.Use(middleware.ContextLogger(zap.L()))

	{
		payslips.GET("/:id", middleware.RBACAuthorize(rbacService, "payslip", "read"), h.GetById)
		payslips.GET("/:id/breakdown", middleware.RBACAuthorize(rbacService, "payslip", "read"), h.GetBreakdown)
		payslips.GET("/:id/download",
			middleware.RBACAuthorize(rbacService, "payslip", "read"),
			middleware.RateLimitByUser(0.5, 2),
			h.Download,
		)

		payslips.POST("/:id/calculate", middleware.RBACAuthorize(rbacService, "payslip", "update"), middleware.Idempotency(rdb), h.Calculate)
		payslips.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "payslip", "approve"), h.Approve)
		payslips.POST("/:id/mark-paid", middleware.RBACAuthorize(rbacService, "payslip", "approve"), middleware.Idempotency(rdb), h.MarkPaid)
		payslips.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "payslip", "update"), h.Cancel)
		payslips.POST("/:id/deductions", middleware.RBACAuthorize(rbacService, "payslip", "update"), h.AddDeduction)
		payslips.POST("/:id/bonuses", middleware.RBACAuthorize(rbacService, "payslip", "update"), h.AddBonus)
	}
}
