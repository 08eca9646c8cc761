package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the /api/v1 group.
func (h *Handler) Register(api *gin.RouterGroup) {
	projects := api.Group("/projects")
	projects.GET("", h.list)
	projects.POST("", h.create)
	projects.GET("/:id", h.show)
	projects.PUT("/:id", h.update)
	projects.PATCH("/:id", h.update)
	projects.DELETE("/:id", h.delete)

	api.GET("/users/:user_id/projects", h.listForUser)
}
