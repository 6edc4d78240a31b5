package rbac

import (
	"github.com/gin-gonic/gin"

	"go-hrpay/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, handler *Handler, service Service) {
	group := r.Group("/rbac")
	{
		group.POST("/enforce", middleware.RateLimitByIP(5, 20), handler.Enforce)

		// Management
		management := group.Group("")
		management.Use(middleware.AuthMiddleware())
		{
			management.GET("/roles", middleware.RBACAuthorize(service, "role", "read"), handler.ListRoles)
			management.GET("/roles/:id", middleware.RBACAuthorize(service, "role", "read"), handler.GetRole)
			management.POST("/roles", middleware.RBACAuthorize(service, "role", "manage"), handler.CreateRole)
			management.PUT("/roles/:id", middleware.RBACAuthorize(service, "role", "manage"), handler.UpdateRole)
			management.DELETE("/roles/:id", middleware.RBACAuthorize(service, "role", "manage"), handler.DeleteRole)
			management.PUT("/roles/:id/permissions", middleware.RBACAuthorize(service, "role", "manage"), handler.UpdateRolePermissions)

			management.GET("/permissions", middleware.RBACAuthorize(service, "role", "manage"), handler.ListPermissions)
		}
	}
}
