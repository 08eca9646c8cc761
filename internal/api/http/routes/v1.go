package routes

import (
	"github.com/gin-gonic/gin"

	authhttp "github.com/snapcourse/snapcourse-backend/internal/auth/http"
	projecthttp "github.com/snapcourse/snapcourse-backend/internal/projects/http"
)

type V1Deps struct {
	Projects   *projecthttp.Handler
	Auth       *authhttp.Handler
	LoginLimit gin.HandlerFunc
}

// RegisterV1 mounts the JSON API. The current user is resolved by the engine-level middleware.
func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")

	dep.Projects.Register(api)
	dep.Auth.RegisterAPI(api, dep.LoginLimit)
}
