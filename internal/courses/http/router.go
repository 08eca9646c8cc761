package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(r gin.IRouter) {
	g := r.Group("/courses")
	g.GET("", h.index)
	g.GET("/new", h.newForm)
	g.POST("", h.create)
	g.GET("/:id", h.show)
	g.POST("/:id/delete", h.delete)
	g.POST("/:id/enroll", h.enroll)
}
