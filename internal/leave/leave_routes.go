package leave

import (
	"dayflow/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	api *gin.RouterGroup,
	handler *Handler,
	authorizer middleware.Authorizer,
	rdb *redis.Client,
) {
	mine := api.Group("/employee/leaves")
	mine.Use(middleware.AuthMiddleware())
	{
		mine.POST("",
			middleware.Authorize(authorizer, "leave", "create"),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
		mine.GET("", middleware.Authorize(authorizer, "leave", "read"), handler.ListMine)
	}

	hr := api.Group("/hr/leaves")
	hr.Use(middleware.AuthMiddleware())
	{
		hr.GET("/pending", middleware.Authorize(authorizer, "leave", "review"), handler.ListPending)
		hr.PATCH("/:id/approve", middleware.Authorize(authorizer, "leave", "review"), handler.Approve)
		hr.PATCH("/:id/reject", middleware.Authorize(authorizer, "leave", "review"), handler.Reject)
	}
}
