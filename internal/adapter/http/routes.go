package http

import (
	"github.com/gin-gonic/gin"

	"github.com/gregsyu/task-manager/internal/adapter/http/handlers"
	"github.com/gregsyu/task-manager/internal/adapter/http/middleware"
	"github.com/gregsyu/task-manager/internal/core/ports"
)

func RegisterRoutes(
	r *gin.Engine,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	taskHandler *handlers.TaskHandler,
	authService ports.AuthService,
) {
	api := r.Group("/api/v1")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		authorized := api.Group("")
		authorized.Use(middleware.AuthMiddleware(authService))
		{
			authorized.GET("/auth/me", authHandler.Me)

			authorized.POST("/tasks", taskHandler.CreateTask)
			authorized.GET("/tasks", taskHandler.ListTasks)
			authorized.GET("/tasks/:id", taskHandler.GetTask)
			authorized.PATCH("/tasks/:id", taskHandler.UpdateTask)
			authorized.DELETE("/tasks/:id", taskHandler.DeleteTask)
		}
	}
}
