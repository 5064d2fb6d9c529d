package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"whisper/rooms/internal/auth"
	"whisper/rooms/internal/broker"
	"whisper/rooms/internal/config"
	"whisper/rooms/internal/database"
	"whisper/rooms/internal/hub"
	"whisper/rooms/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTest points the package globals at an isolated in-memory database
// and a loopback broker.
func setupTest(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Room{}, &models.Message{}))
	database.DB = db

	hub.InitRelay(broker.NewMemory())

	Store = nil
	t.Cleanup(func() { Store = nil })
}

func testRouter() *gin.Engine {
	router := gin.New()

	apiV1 := router.Group("/api/v1")

	authRoutes := apiV1.Group("/auth")
	authRoutes.POST("/register", RegisterUser)
	authRoutes.POST("/login", LoginUser)

	userRoutes := apiV1.Group("/users")
	userRoutes.Use(auth.AuthMiddleware())
	userRoutes.GET("/me", GetMe)

	roomRoutes := apiV1.Group("/rooms")
	roomRoutes.Use(auth.AuthMiddleware())
	roomRoutes.POST("", CreateRoom)
	roomRoutes.GET("", ListRooms)
	roomRoutes.GET("/:id", GetRoomByID)
	roomRoutes.POST("/:id/join", JoinRoom)
	roomRoutes.DELETE("/:id", DeleteRoom)
	roomRoutes.GET("/:id/messages", GetMessages)
	roomRoutes.POST("/:id/messages", SendMessage)
	roomRoutes.POST("/:id/media", UploadMedia)
	roomRoutes.POST("/:id/typing", UpdateTyping)
	roomRoutes.GET("/:id/stream", StreamRoom)

	return router
}

// doJSON performs a JSON request and returns the recorder.
func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

// createRoom creates a room through the API and returns its response.
func createRoom(t *testing.T, router *gin.Engine, token, name, password string) RoomResponse {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/v1/rooms", token, gin.H{
		"name":     name,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var room RoomResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &room))
	return room
}
