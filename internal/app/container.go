package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/usermgmt/domain"
	"github.com/you/usermgmt/internal/config"
	"github.com/you/usermgmt/internal/infrastructure/auth"
	"github.com/you/usermgmt/internal/infrastructure/database"
	"github.com/you/usermgmt/internal/infrastructure/repositories"
	"github.com/you/usermgmt/internal/services"
)

// Container holds all dependencies. All mutable state (user table, session
// table, rate counters) lives behind the handles owned here; nothing is
// package-global.
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client

	UserRepo    domain.UserRepository
	SessionRepo domain.SessionRepository

	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	AuthSvc     domain.AuthService
	UserSvc     domain.UserService
	StatsSvc    domain.StatsService
	RateLimiter domain.RateLimiter
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	container.initRedis()
	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DBDriver, c.Config.DSN)
	if err != nil {
		return err
	}
	if err := repositories.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.SessionTTL)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.SessionTTL)
	c.AuthSvc = services.NewAuthService(c.UserRepo, c.SessionRepo, c.PasswordSvc, c.TokenSvc)
	c.UserSvc = services.NewUserService(c.UserRepo, c.PasswordSvc)
	c.StatsSvc = services.NewStatsService(c.UserRepo, c.SessionRepo)
	c.RateLimiter = services.NewRateLimiter(c.RedisClient, c.Config.RateLimitRequests, c.Config.RateLimitWindow)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
