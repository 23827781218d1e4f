// Package http wires the HTTP transport: router, handlers, middleware.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"deviceauth/internal/application/access/usecases"
	"deviceauth/internal/infrastructure/auth"
	"deviceauth/internal/infrastructure/config"
	"deviceauth/internal/infrastructure/ratelimit"
	"deviceauth/internal/infrastructure/repository"
	"deviceauth/internal/infrastructure/token"
	"deviceauth/internal/interfaces/http/handlers"
	"deviceauth/internal/interfaces/http/middleware"
	"deviceauth/internal/shared/db"
	"deviceauth/internal/shared/logger"
)

// Deps carries the externally managed resources the router builds on.
type Deps struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Logger      logger.Interface
}

// NewRouter assembles repositories, use cases, handlers and middleware into
// a ready-to-serve engine.
func NewRouter(deps Deps) (*gin.Engine, error) {
	gin.SetMode(ginMode(deps.Config.Server.Mode))

	if err := handlers.RegisterValidations(); err != nil {
		return nil, err
	}

	deviceRepo := repository.NewDeviceRepository(deps.DB)
	authRepo := repository.NewAuthorizationRepository(deps.DB)
	operatorDir := repository.NewOperatorDirectory(deps.DB)

	hasher := auth.NewBcryptPasswordHasher(deps.Config.Auth.BcryptCost)
	txManager := db.NewTransactionManager(deps.DB)
	issuer := &tokenIssuerAdapter{
		generator: token.NewGenerator(
			deps.Config.Auth.TokenVersion,
			deps.Config.Auth.AccessDuration(),
			deps.Config.Auth.RefreshDuration(),
		),
	}

	grantUC := usecases.NewGrantAccessUseCase(
		operatorDir, hasher, deviceRepo, authRepo, issuer, txManager,
		deps.Logger.Named("usecase.grant_access"),
	)
	validateUC := usecases.NewValidateAccessUseCase(
		authRepo,
		deps.Logger.Named("usecase.validate_access"),
	)
	refreshUC := usecases.NewRefreshAccessUseCase(
		operatorDir, deviceRepo, authRepo, issuer, txManager,
		deps.Config.Auth.MinRefreshInterval(),
		deps.Logger.Named("usecase.refresh_access"),
	)
	revokeUC := usecases.NewRevokeAccessUseCase(
		deviceRepo, authRepo, txManager,
		deps.Logger.Named("usecase.revoke_access"),
	)

	accessHandler := handlers.NewAccessHandler(
		grantUC, validateUC, refreshUC, revokeUC,
		deps.Logger.Named("handler.access"),
	)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(deps.Logger.Named("http")))
	engine.Use(middleware.Recovery())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	access := api.Group("/access")
	{
		request := access.Group("")
		if deps.Config.RateLimit.Enabled && deps.RedisClient != nil {
			limiter := ratelimit.NewRedisRateLimiter(deps.RedisClient)
			limits := ratelimit.Limits{
				RequestsPerMinute: deps.Config.RateLimit.PerMinute,
				RequestsPerHour:   deps.Config.RateLimit.PerHour,
			}
			request.Use(middleware.LoginRateLimit(limiter, limits, deps.Logger.Named("ratelimit")))
		}
		request.POST("/request", accessHandler.RequestAccess)

		access.GET("/verify", accessHandler.VerifyAccess)
		access.POST("/refresh", accessHandler.RefreshAccess)
		access.POST("/drop", accessHandler.DropAccess)
	}

	return engine, nil
}

func ginMode(mode string) string {
	switch mode {
	case "release", "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

// tokenIssuerAdapter bridges the token generator into the use case port.
type tokenIssuerAdapter struct {
	generator token.Generator
}

func (a *tokenIssuerAdapter) AccessToken(seed string, now time.Time) usecases.IssuedToken {
	return issuedToken(a.generator.AccessToken(seed, now))
}

func (a *tokenIssuerAdapter) RefreshToken(seed string, now time.Time) usecases.IssuedToken {
	return issuedToken(a.generator.RefreshToken(seed, now))
}

func issuedToken(t token.Token) usecases.IssuedToken {
	return usecases.IssuedToken{
		Value:     t.Value,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
	}
}
