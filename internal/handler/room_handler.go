package handler

import (
	"net/http"
	"strconv"
	"time"

	"whisper/rooms/internal/database"
	"whisper/rooms/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

type RoomInput struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type JoinRoomInput struct {
	Password string `json:"password" binding:"required"`
}

// RoomResponse never carries the room password.
type RoomResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	OwnerID     uint      `json:"owner_id"`
	MemberCount int       `json:"member_count"`
	IsFull      bool      `json:"is_full"`
	CreatedAt   time.Time `json:"created_at"`
}

func newRoomResponse(room models.Room) RoomResponse {
	return RoomResponse{
		ID:          room.ID,
		Name:        room.Name,
		OwnerID:     room.OwnerID,
		MemberCount: room.MemberCount,
		IsFull:      room.MemberCount >= models.MaxRoomMembers,
		CreatedAt:   room.CreatedAt,
	}
}

// endregion

// CreateRoom godoc
// @Summary      Create a new room
// @Description  Creates a password-protected room, making the creator the owner.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RoomInput true "Room Info"
// @Success      201  {object}  RoomResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /rooms [post]
func CreateRoom(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input RoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room := models.Room{
		Name:        input.Name,
		Password:    input.Password,
		OwnerID:     userID.(uint),
		MemberCount: 1,
	}

	if err := database.DB.Create(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, newRoomResponse(room))
}

// ListRooms godoc
// @Summary      List rooms
// @Description  Gets a paginated list of rooms, newest first.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(20)
// @Success      200 {object} PaginatedResponse[RoomResponse]
// @Router       /rooms [get]
func ListRooms(c *gin.Context) {
	page, limit := PageParams(c)

	query := database.DB.Model(&models.Room{}).Order("created_at DESC")
	result, err := Paginate[models.Room](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rooms"})
		return
	}

	responses := make([]RoomResponse, len(result.Data))
	for i, room := range result.Data {
		responses[i] = newRoomResponse(room)
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, result.Meta.TotalItems, page, limit))
}

// GetRoomByID godoc
// @Summary      Get a room by ID
// @Description  Gets display metadata for a single room.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {object} RoomResponse
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/{id} [get]
func GetRoomByID(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))

	var room models.Room
	if err := database.DB.First(&room, roomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	c.JSON(http.StatusOK, newRoomResponse(room))
}

// JoinRoom godoc
// @Summary      Join a room
// @Description  Verifies the room password and admits the caller if the room is not full.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int           true "Room ID"
// @Param        input body JoinRoomInput true "Join Info"
// @Success      200 {object} RoomResponse
// @Failure      403 {object} ErrorResponse "Incorrect password"
// @Failure      404 {object} ErrorResponse "Room not found"
// @Failure      409 {object} ErrorResponse "Room is full"
// @Router       /rooms/{id}/join [post]
func JoinRoom(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))

	var input JoinRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var room models.Room
	if err := database.DB.First(&room, roomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	// A full room rejects joins regardless of password correctness.
	if room.MemberCount >= models.MaxRoomMembers {
		c.JSON(http.StatusConflict, gin.H{"error": "Room is full"})
		return
	}

	if room.Password != input.Password {
		c.JSON(http.StatusForbidden, gin.H{"error": "Incorrect password"})
		return
	}

	// Advisory count only: not transactionally enforced against concurrent joins.
	if err := database.DB.Model(&room).
		UpdateColumn("member_count", gorm.Expr("member_count + ?", 1)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join room"})
		return
	}
	room.MemberCount++

	c.JSON(http.StatusOK, newRoomResponse(room))
}

// DeleteRoom godoc
// @Summary      Delete a room (Owner only)
// @Description  Deletes a room. Only the owner can perform this action.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {object} map[string]string "{"message": "Room deleted successfully"}"
// @Failure      403 {object} ErrorResponse "Only the owner can delete the room"
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/{id} [delete]
func DeleteRoom(c *gin.Context) {
	userID, _ := c.Get("userID")
	roomID, _ := strconv.Atoi(c.Param("id"))

	var room models.Room
	if err := database.DB.First(&room, roomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	if room.OwnerID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can delete the room"})
		return
	}

	if err := database.DB.Delete(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}
