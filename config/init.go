package config

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

var RedisClient *redis.Client

// InitApp wires up the router, websocket hub and cron scheduler and
// connects every backing component.
func InitApp() (*gin.Engine, *melody.Melody, *cron.Cron, error) {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := connectBackends(); err != nil {
		return nil, nil, nil, err
	}

	router := gin.Default()
	router.SetTrustedProxies(nil)
	router.Use(cors.New(corsConfig()))

	return router, melody.New(), cron.New(), nil
}

// corsConfig allows any origin while keeping credentialed requests working,
// since the frontend origin varies per deployment.
func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AddAllowHeaders("Authorization")
	cfg.AllowCredentials = true
	cfg.AllowAllOrigins = false
	cfg.AllowOriginFunc = func(origin string) bool { return true }
	return cfg
}

func connectBackends() error {
	if err := LoadEnv(); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	ConnectDB()
	MigrateDB()
	ConnectCloudinary()

	var err error
	if RedisClient, err = ConnectRedis(); err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}

	log.Println("All backends connected")
	return nil
}
