package http

import "github.com/gin-gonic/gin"

// RegisterPages attaches the HTML login, signup and logout routes.
// loginLimit guards the credential check.
func (h *Handler) RegisterPages(r gin.IRouter, loginLimit gin.HandlerFunc) {
	r.GET("/login", h.loginPage)
	r.POST("/login", loginLimit, h.login)
	r.GET("/signup", h.signupPage)
	r.POST("/signup", h.signup)
	r.POST("/logout", h.logout)
}

// RegisterAPI attaches the JSON sign-up and token endpoints.
func (h *Handler) RegisterAPI(api *gin.RouterGroup, loginLimit gin.HandlerFunc) {
	api.POST("/users", h.createUser)
	api.POST("/sessions", loginLimit, h.createToken)
}
