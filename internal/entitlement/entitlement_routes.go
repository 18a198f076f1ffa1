package entitlement

import (
	"go-timesheet/internal/middleware"
	"go-timesheet/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	ents := r.Group("/entitlements")
	ents.Use(middleware.AuthMiddleware())
	{
		ents.GET("/me", middleware.RBACAuthorize(rbacService, "entitlement", "read"), handler.MyBalances)
		ents.GET("/users/:userId", middleware.RBACAuthorize(rbacService, "entitlement", "manage"), handler.ListForUser)
		ents.GET("/users/:userId/balances", middleware.RBACAuthorize(rbacService, "entitlement", "manage"), handler.BalancesForUser)
		ents.POST("", middleware.RBACAuthorize(rbacService, "entitlement", "manage"), handler.Grant)
		ents.PUT("/:id", middleware.RBACAuthorize(rbacService, "entitlement", "manage"), handler.UpdateGrant)
	}
}
