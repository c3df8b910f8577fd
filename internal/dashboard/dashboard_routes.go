package dashboard

import (
	"dayflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	api *gin.RouterGroup,
	handler *Handler,
	authorizer middleware.Authorizer,
) {
	mine := api.Group("/employee/dashboard")
	mine.Use(middleware.AuthMiddleware())
	{
		mine.GET("", middleware.Authorize(authorizer, "dashboard", "read"), handler.EmployeeDashboard)
	}

	hr := api.Group("/hr/dashboard")
	hr.Use(middleware.AuthMiddleware())
	{
		hr.GET("", middleware.Authorize(authorizer, "dashboard", "read_all"), handler.HRDashboard)
	}
}
