package employee

import (
	"dayflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	api *gin.RouterGroup,
	handler *Handler,
	authorizer middleware.Authorizer,
) {
	me := api.Group("/employee/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("", middleware.Authorize(authorizer, "profile", "read"), handler.Me)
		me.PATCH("", middleware.Authorize(authorizer, "profile", "update"), handler.UpdateMe)
	}

	hr := api.Group("/hr/employees")
	hr.Use(middleware.AuthMiddleware())
	{
		hr.GET("", middleware.Authorize(authorizer, "employee", "read"), handler.Roster)
		hr.GET("/:id", middleware.Authorize(authorizer, "employee", "read"), handler.GetByID)
		hr.POST("", middleware.Authorize(authorizer, "employee", "provision"), handler.Provision)
	}
}
