package bootstrap

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/snapcourse/snapcourse-backend/config"
	httpapi "github.com/snapcourse/snapcourse-backend/internal/api/http"
	"github.com/snapcourse/snapcourse-backend/internal/api/http/middleware"
	"github.com/snapcourse/snapcourse-backend/internal/api/http/routes"
	"github.com/snapcourse/snapcourse-backend/internal/auth"
	authhttp "github.com/snapcourse/snapcourse-backend/internal/auth/http"
	authservice "github.com/snapcourse/snapcourse-backend/internal/auth/service"
	coursehttp "github.com/snapcourse/snapcourse-backend/internal/courses/http"
	courseservice "github.com/snapcourse/snapcourse-backend/internal/courses/service"
	projecthttp "github.com/snapcourse/snapcourse-backend/internal/projects/http"
	projectservice "github.com/snapcourse/snapcourse-backend/internal/projects/service"
	userservice "github.com/snapcourse/snapcourse-backend/internal/users/service"
	"github.com/snapcourse/snapcourse-backend/internal/web"
)

type RouterDeps struct {
	ServiceName string
	Config      *config.Config
	Storage     *Storage
	Redis       *redis.Client
	Logger      *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Config
	logger := dep.Logger

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	web.Install(r)

	var redisHealth httpapi.Pinger
	if dep.Redis != nil {
		redisHealth = redisPinger{client: dep.Redis}
	}
	httpapi.NewHealthHandler(dep.ServiceName, cfg.App.Version, dep.Storage.Health, redisHealth).RegisterRoutes(r)

	userService := userservice.NewUserService(dep.Storage.Users, logger)
	sessions := auth.NewRedisSessionStore(dep.Redis, cfg.Auth.SessionTTL)
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTTTL)
	cookies := web.NewSessions(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL, cfg.Auth.CookieSecure)
	render := web.NewRenderer(cookies, logger)

	r.Use(auth.WithUser(auth.Resolver{
		Users:    userService,
		Tokens:   tokens,
		Sessions: sessions,
		Cookies:  cookies,
		Logger:   logger,
	}))

	loginLimit := middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst))
	authHandler := authhttp.New(authservice.NewAuthService(userService, sessions, tokens, logger), render, logger)
	authHandler.RegisterPages(r, loginLimit)

	coursehttp.New(courseservice.NewCourseService(dep.Storage.Courses, logger), render, logger).Register(r)

	routes.RegisterV1(r, routes.V1Deps{
		Projects:   projecthttp.New(projectservice.NewProjectService(dep.Storage.Projects, logger), logger),
		Auth:       authHandler,
		LoginLimit: loginLimit,
	})

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/courses") })

	return r
}
