package project

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
	projects := r.Group("/projects")
	projects.Use(middleware.AuthMiddleware())
	{
		projects.GET("/options", middleware.RBACAuthorize(rbacService, "project", "read"), handler.GetOptions)
		projects.GET("", middleware.RBACAuthorize(rbacService, "project", "manage"), handler.GetAll)
		projects.GET("/:id", middleware.RBACAuthorize(rbacService, "project", "manage"), handler.GetById)
		projects.POST("", middleware.RBACAuthorize(rbacService, "project", "manage"), handler.Create)
		projects.PUT("/:id", middleware.RBACAuthorize(rbacService, "project", "manage"), handler.Update)
		projects.POST("/:id/members", middleware.RBACAuthorize(rbacService, "project", "manage"), handler.AddMember)
		projects.DELETE("/:id/members/:userId", middleware.RBACAuthorize(rbacService, "project", "manage"), handler.RemoveMember)
	}
}
