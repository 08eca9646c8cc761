package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/snapcourse/snapcourse-backend/internal/users/domain"
)

const CtxCurrentUser = "current_user"

// SetCurrentUser stores the signed-in user on the request.
func SetCurrentUser(c *gin.Context, u *domain.User) {
	c.Set(CtxCurrentUser, u)
}

// CurrentUser returns the signed-in user, or nil for an anonymous request.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(CtxCurrentUser)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
