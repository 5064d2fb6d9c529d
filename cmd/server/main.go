package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"whisper/rooms/internal/auth"
	"whisper/rooms/internal/broker"
	"whisper/rooms/internal/config"
	"whisper/rooms/internal/database"
	"whisper/rooms/internal/handler"
	"whisper/rooms/internal/hub"
	"whisper/rooms/internal/storage"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "whisper/rooms/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Whisper Rooms API
// @version         1.0
// @description     Password-protected group chat rooms with realtime message and presence streams.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// Event broker: NATS when configured, in-process loopback otherwise.
	var b broker.Broker
	if config.AppConfig.NatsURL != "" {
		natsBroker, err := broker.NewNats(config.AppConfig.NatsURL)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer natsBroker.Close()
		b = natsBroker
		log.Println("NATS broker connected.")
	} else {
		b = broker.NewMemory()
		log.Println("NATS_URL not set, using in-process broker.")
	}
	hub.InitRelay(b)

	// Object storage for media messages.
	if config.AppConfig.MinioEndpoint != "" {
		store, err := storage.NewMinio(storage.Config{
			Endpoint:  config.AppConfig.MinioEndpoint,
			AccessKey: config.AppConfig.MinioAccessKey,
			SecretKey: config.AppConfig.MinioSecretKey,
			UseSSL:    config.AppConfig.MinioUseSSL,
			Bucket:    config.AppConfig.MinioBucket,
		})
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		if err := store.EnsureBucket(context.Background()); err != nil {
			log.Fatalf("Failed to ensure storage bucket: %v", err)
		}
		handler.Store = store
		log.Println("Object storage connected.")
	} else {
		log.Println("Warning: MINIO_ENDPOINT not set, media uploads are disabled")
	}

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("/me", handler.GetMe)
		}

		// Room routes (protected)
		roomRoutes := apiV1.Group("/rooms")
		roomRoutes.Use(auth.AuthMiddleware())
		{
			roomRoutes.POST("", handler.CreateRoom)
			roomRoutes.GET("", handler.ListRooms)
			roomRoutes.GET("/:id", handler.GetRoomByID)
			roomRoutes.POST("/:id/join", handler.JoinRoom)
			roomRoutes.DELETE("/:id", handler.DeleteRoom)

			// Messages and realtime
			roomRoutes.GET("/:id/messages", handler.GetMessages)
			roomRoutes.POST("/:id/messages", handler.SendMessage)
			roomRoutes.POST("/:id/media", handler.UploadMedia)
			roomRoutes.POST("/:id/typing", handler.UpdateTyping)
			roomRoutes.GET("/:id/stream", handler.StreamRoom)
		}
	}

	fmt.Printf("Server is running on %s\n", config.AppConfig.ServerAddr)
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(config.AppConfig.ServerAddr))
}
