package main

import (
	"banking_api/internal/api"        // Custom package for API handlers
	"banking_api/internal/config"     // Custom package for configuration
	"banking_api/internal/middleware" // Custom package for middleware
	"banking_api/internal/service"    // Custom package for business logic
	"banking_api/internal/store"      // Custom package for persistence
	"context"                         // context package is needed for Redis operations
	"log"                             // log package is needed for logging
	"net/http"                        // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database.
	// TranslateError lets the store recognize duplicate-username inserts.
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Wire the store and services
	st := store.NewGormStore(db)
	authService := service.NewAuthService(st, cfg.JWTSecret, cfg.TokenTTL)
	accountService := service.NewAccountService(st)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance
	r.Use(middleware.RequestID())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Public routes
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Banking System!"})
	})
	r.POST("/register", api.RegisterHandler(authService)) // Registration endpoint
	r.POST("/token", api.TokenHandler(authService))       // Token (login) endpoint

	// Account routes (protected by JWT)
	accountGroup := r.Group("/account")
	accountGroup.Use(middleware.JWTAuthMiddleware(authService))
	accountGroup.POST("/add", api.AddMoneyHandler(accountService, redisClient))       // Deposit endpoint
	accountGroup.POST("/remove", api.RemoveMoneyHandler(accountService, redisClient)) // Withdrawal endpoint
	accountGroup.GET("/balance", api.GetBalanceHandler(accountService, redisClient))  // Balance endpoint
	accountGroup.GET("/history", api.GetHistoryHandler(accountService, redisClient))  // Transaction history endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
