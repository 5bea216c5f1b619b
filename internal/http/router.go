package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/usermgmt/internal/http/handlers"
	"github.com/you/usermgmt/internal/http/middleware"
)

// BuildRouter wires the HTTP surface. Write routes carry the rate limiter;
// mutating user routes additionally require a live session, checked before
// the handler looks at the target id.
func BuildRouter(
	sh *handlers.SystemHandlers,
	ah *handlers.AuthHandlers,
	uh *handlers.UserHandlers,
	authmw *middleware.AuthMW,
	rlmw *middleware.RateLimitMW,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Method not allowed"})
	})

	r.GET("/", sh.Root)
	r.GET("/health", sh.Health)
	r.GET("/stats", sh.Stats)

	r.POST("/login", ah.Login)
	r.POST("/logout", ah.Logout)

	users := r.Group("/users")
	users.GET("", uh.List)
	users.GET("/search", uh.Search)
	users.GET("/:id", uh.Get)
	users.POST("", rlmw.Limit(), uh.Create)
	users.PUT("/:id", authmw.RequireSession(), rlmw.Limit(), uh.Update)
	users.DELETE("/:id", authmw.RequireSession(), rlmw.Limit(), uh.Delete)

	return r
}
