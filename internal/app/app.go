package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/usermgmt/internal/config"
	httpx "github.com/you/usermgmt/internal/http"
	"github.com/you/usermgmt/internal/http/handlers"
	"github.com/you/usermgmt/internal/http/middleware"
)

// Run builds the dependency container and serves the API
func Run(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	sysH := handlers.NewSystemHandlers(c.StatsSvc, cfg.APIVersion)
	authH := handlers.NewAuthHandlers(c.AuthSvc)
	userH := handlers.NewUserHandlers(c.UserSvc)

	authMW := middleware.NewAuthMW(c.AuthSvc)
	rateMW := middleware.NewRateLimitMW(c.RateLimiter)

	r := httpx.BuildRouter(sysH, authH, userH, authMW, rateMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
