package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"whisper/rooms/internal/database"
	"whisper/rooms/internal/hub"
	"whisper/rooms/internal/models"
	"whisper/rooms/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Store is the object store backing media uploads, wired up at startup.
// Media endpoints reject requests while it is nil.
var Store storage.ObjectStore

// region --- DTOs ---

type SendMessageInput struct {
	Content string `json:"content" binding:"required"`
}

type TypingInput struct {
	IsTyping *bool `json:"is_typing" binding:"required"`
}

type MessageResponse struct {
	ID          uint               `json:"id"`
	RoomID      uint               `json:"room_id"`
	SenderID    uint               `json:"sender_id"`
	SenderEmail string             `json:"sender_email"`
	Type        models.MessageType `json:"type"`
	Content     string             `json:"content"`
	FileURL     string             `json:"file_url,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

func newMessageResponse(msg models.Message) MessageResponse {
	return MessageResponse{
		ID:          msg.ID,
		RoomID:      msg.RoomID,
		SenderID:    msg.SenderID,
		SenderEmail: msg.SenderEmail,
		Type:        msg.Type,
		Content:     msg.Content,
		FileURL:     msg.FileURL,
		CreatedAt:   msg.CreatedAt,
	}
}

// endregion

// GetMessages godoc
// @Summary      Get a room's message history
// @Description  Returns the full message history for a room, ascending by creation time.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {array} MessageResponse
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/{id}/messages [get]
func GetMessages(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))

	var room models.Room
	if err := database.DB.First(&room, roomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	var messages []models.Message
	if err := database.DB.Where("room_id = ?", room.ID).
		Order("created_at ASC").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}

	responses := make([]MessageResponse, len(messages))
	for i, msg := range messages {
		responses[i] = newMessageResponse(msg)
	}

	c.JSON(http.StatusOK, responses)
}

// SendMessage godoc
// @Summary      Send a text message
// @Description  Inserts a text message and broadcasts it to the room's stream.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int              true "Room ID"
// @Param        input body SendMessageInput true "Message"
// @Success      201 {object} MessageResponse
// @Failure      400 {object} ErrorResponse "Empty content"
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/{id}/messages [post]
func SendMessage(c *gin.Context) {
	userID, _ := c.Get("userID")
	userEmail, _ := c.Get("userEmail")
	roomID, _ := strconv.Atoi(c.Param("id"))

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(input.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content cannot be empty"})
		return
	}

	var room models.Room
	if err := database.DB.First(&room, roomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	message := models.Message{
		RoomID:      room.ID,
		SenderID:    userID.(uint),
		SenderEmail: userEmail.(string),
		Type:        models.MessageTypeText,
		Content:     input.Content,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	publishMessage(c, message)

	c.JSON(http.StatusCreated, newMessageResponse(message))
}

// UploadMedia godoc
// @Summary      Upload a media message
// @Description  Uploads an image or video and inserts a message referencing its public URL.
// @Tags         messages
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     int  true "Room ID"
// @Param        file formData file true "Media file"
// @Success      201 {object} MessageResponse
// @Failure      400 {object} ErrorResponse "Missing file"
// @Failure      404 {object} ErrorResponse "Room not found"
// @Failure      503 {object} ErrorResponse "Object storage not configured"
// @Router       /rooms/{id}/media [post]
func UploadMedia(c *gin.Context) {
	userID, _ := c.Get("userID")
	userEmail, _ := c.Get("userEmail")
	roomID, _ := strconv.Atoi(c.Param("id"))

	if Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Object storage not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}

	var room models.Room
	if err := database.DB.First(&room, roomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	messageType := models.MessageTypeVideo
	if strings.HasPrefix(contentType, "image/") {
		messageType = models.MessageTypeImage
	}

	// Random object name, original extension, room-scoped path prefix.
	key := fmt.Sprintf("%d/%s%s", room.ID, uuid.NewString(), filepath.Ext(fileHeader.Filename))

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	if err := Store.Upload(c.Request.Context(), key, contentType, file, fileHeader.Size); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}

	// Upload and insert are two sequential operations. A failed insert
	// leaves the uploaded object orphaned; it is never cleaned up.
	message := models.Message{
		RoomID:      room.ID,
		SenderID:    userID.(uint),
		SenderEmail: userEmail.(string),
		Type:        messageType,
		Content:     fileHeader.Filename,
		FileURL:     Store.PublicURL(key),
	}
	if err := database.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	publishMessage(c, message)

	c.JSON(http.StatusCreated, newMessageResponse(message))
}

// UpdateTyping godoc
// @Summary      Update typing state
// @Description  Publishes the caller's typing flag to the room's presence channel.
// @Tags         messages
// @Accept       json
// @Security     BearerAuth
// @Param        id    path int         true "Room ID"
// @Param        input body TypingInput true "Typing flag"
// @Success      204 "No Content"
// @Failure      400 {object} ErrorResponse
// @Router       /rooms/{id}/typing [post]
func UpdateTyping(c *gin.Context) {
	userEmail, _ := c.Get("userEmail")
	roomID, _ := strconv.Atoi(c.Param("id"))

	var input TypingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hub.GlobalHub.SetTyping(uint(roomID), userEmail.(string), *input.IsTyping)
	c.Status(http.StatusNoContent)
}

// publishMessage pushes a persisted message onto the room's event topic. The
// sender sees it only when it is echoed back on the stream; there is no
// optimistic local insert.
func publishMessage(c *gin.Context, message models.Message) {
	event := hub.Event{Type: hub.EventMessageInsert, Payload: newMessageResponse(message)}
	if err := hub.GlobalRelay.Publish(c.Request.Context(), message.RoomID, event); err != nil {
		// The row is committed; subscribers can recover it on the next
		// history fetch. Do not fail the request.
		c.Error(err)
	}
}
