package timesheet

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
	sheets := r.Group("/timesheets")
	sheets.Use(middleware.AuthMiddleware())
	{
		sheets.GET("/week", middleware.RBACAuthorize(rbacService, "timesheet", "read"), handler.CurrentWeek)
		sheets.GET("/week/:year/:week", middleware.RBACAuthorize(rbacService, "timesheet", "read"), handler.Week)
		sheets.POST("/week/:year/:week", middleware.RBACAuthorize(rbacService, "timesheet", "write"), handler.SaveWeek)
		sheets.POST("/week/:year/:week/rows", middleware.RBACAuthorize(rbacService, "timesheet", "write"), handler.AddRow)
		sheets.DELETE("/week/:year/:week/rows/:projectId", middleware.RBACAuthorize(rbacService, "timesheet", "write"), handler.RemoveRow)
	}
}
