package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/justmurenga/vibe-flow-point-of-sale/config"
	"github.com/justmurenga/vibe-flow-point-of-sale/database"
	adminapi "github.com/justmurenga/vibe-flow-point-of-sale/internal/api/admin"
	authapi "github.com/justmurenga/vibe-flow-point-of-sale/internal/api/auth"
	routes "github.com/justmurenga/vibe-flow-point-of-sale/internal/app/http"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/tenants"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/infra/cache"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/metrics"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/provisioning"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()
	metrics.Init()

	// Shared tenant cache, when Redis is configured.
	var shared *cache.Cache
	if config.REDIS_ADDR != "" {
		shared = cache.New(config.REDIS_ADDR)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := shared.Ping(ctx); err != nil {
			log.Printf("Redis unreachable (%v), continuing with in-process cache only", err)
			shared = nil
		}
		cancel()
	}

	resolver := tenants.NewResolver(&tenants.GormStore{DB: database.DB}, config.BASE_DOMAIN, shared)
	adminapi.Resolver = resolver

	// Provisioning queue + worker pool, when RabbitMQ is configured.
	// Without it, signup seeds tenants inline.
	if config.RABBITMQ_URL != "" {
		rabbit, err := provisioning.NewRabbitClient(config.RABBITMQ_URL)
		if err != nil {
			log.Printf("RabbitMQ unreachable (%v), provisioning will run inline", err)
		} else {
			authapi.Provisioner = rabbit
			pool := provisioning.NewWorkerPool(database.DB, rabbit, 2)
			if err := pool.Start(); err != nil {
				log.Fatal("❌ Failed to start provisioning workers:", err)
			}
			defer pool.Stop()
		}
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, resolver)

	r.Run(":" + config.PORT)
}
