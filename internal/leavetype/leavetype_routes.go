package leavetype

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
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", middleware.RBACAuthorize(rbacService, "leavetype", "read"), handler.GetAll)
		types.GET("/:id", middleware.RBACAuthorize(rbacService, "leavetype", "read"), handler.GetById)
		types.POST("", middleware.RBACAuthorize(rbacService, "leavetype", "manage"), handler.Create)
		types.PUT("/:id", middleware.RBACAuthorize(rbacService, "leavetype", "manage"), handler.Update)
	}
}
