package main

import (
	"log"
	"os"

	"spebit-service/internal/database"
	"spebit-service/internal/handlers"
	"spebit-service/internal/middleware"
	"spebit-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Redis
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Screenshot storage (Cloudflare R2)
	storageService, err := services.NewStorageService()
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}

	notifier := services.NewLogNotifier()

	// Services
	authService := services.NewAuthService(db, rdb, jwtSecret, notifier)
	cryptoService := services.NewCryptoService(db, rdb)
	methodService := services.NewPaymentMethodService(db)
	walletService := services.NewWalletService(db)
	referralService := services.NewReferralService(db)
	userService := services.NewUserService(db)
	watchService := services.NewWatchService(db)
	transactionService := services.NewTransactionService(db, cryptoService, methodService,
		storageService, asynqClient, notifier)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	marketHandler := handlers.NewMarketHandler(cryptoService, methodService, walletService, referralService, userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, watchService)
	adminHandler := handlers.NewAdminHandler(userService, cryptoService, methodService, transactionService)

	// Initialize Gin
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome To Spebit service",
		})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(jwtSecret, rdb))
	{
		api.POST("/auth/logout", authHandler.Logout)

		api.GET("/cryptocurrencies", marketHandler.ListCryptocurrencies)
		api.GET("/payment-methods", marketHandler.ListPaymentMethods)
		api.GET("/wallet", marketHandler.GetWallet)
		api.GET("/profile", marketHandler.GetProfile)
		api.GET("/referrals/code", marketHandler.GetReferralCode)
		api.GET("/referrals", marketHandler.ListReferrals)

		api.POST("/transactions/buy", transactionHandler.SubmitPayment)
		api.POST("/transactions/:id/blockchain", transactionHandler.SubmitBlockchainDetails)
		api.GET("/transactions", transactionHandler.History)
		api.GET("/transactions/:id/watch", transactionHandler.Watch)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminOnlyMiddleware(db))
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.PUT("/users/:id/block", adminHandler.BlockUser)

		admin.GET("/cryptocurrencies", adminHandler.ListCryptocurrencies)
		admin.POST("/cryptocurrencies", adminHandler.CreateCryptocurrency)
		admin.PUT("/cryptocurrencies/:id", adminHandler.UpdateCryptocurrency)
		admin.DELETE("/cryptocurrencies/:id", adminHandler.DeactivateCryptocurrency)

		admin.GET("/payment-methods", adminHandler.ListPaymentMethods)
		admin.POST("/payment-methods", adminHandler.CreatePaymentMethod)
		admin.PUT("/payment-methods/:id", adminHandler.UpdatePaymentMethod)
		admin.DELETE("/payment-methods/:id", adminHandler.DeletePaymentMethod)

		admin.GET("/transactions", adminHandler.ListTransactions)
		admin.PUT("/transactions/:id/decision", adminHandler.DecideTransaction)
	}

	// Start Cron Schedulers
	transactionArchiveService := services.NewTransactionArchiveService(db)
	transactionArchiveService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
