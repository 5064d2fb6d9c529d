package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"whisper/rooms/internal/database"
	"whisper/rooms/internal/hub"
	"whisper/rooms/internal/models"

	"github.com/gin-gonic/gin"
)

// StreamRoom godoc
// @Summary      Subscribe to a room's event stream
// @Description  Server-sent events: message inserts and presence snapshots for one room.
// @Tags         stream
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {string} string "event stream"
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/{id}/stream [get]
func StreamRoom(c *gin.Context) {
	userEmail, _ := c.Get("userEmail")
	roomIDInt, _ := strconv.Atoi(c.Param("id"))
	roomID := uint(roomIDInt)

	var room models.Room
	if err := database.DB.First(&room, roomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	client := make(hub.Client, 16)
	h := hub.GlobalHub

	h.Subscribe(roomID, client)
	if err := hub.GlobalRelay.Attach(roomID); err != nil {
		h.Unsubscribe(roomID, client)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach to room stream"})
		return
	}

	// Initial presence record: online now, not typing. The resulting sync
	// broadcast doubles as this client's first snapshot frame.
	h.Track(roomID, client, hub.PresenceEntry{
		Email:    userEmail.(string),
		IsTyping: false,
		OnlineAt: time.Now().UTC().Format(time.RFC3339),
	})

	// Mandatory teardown: skipping it leaks the subscription and leaves a
	// phantom presence entry visible to the rest of the room.
	defer func() {
		hub.GlobalRelay.Detach(roomID)
		h.Untrack(roomID, client)
		h.Unsubscribe(roomID, client)
	}()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case msg, ok := <-client:
			if !ok {
				return
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", msg)
			c.Writer.Flush()
		case <-ctx.Done():
			return
		}
	}
}
