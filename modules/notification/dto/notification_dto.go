package dto

import (
	"time"

	"appointease/modules/notification/entity"
)

type NotificationResponse struct {
	ID        int64        `json:"id"`
	Title     string       `json:"title"`
	Message   string       `json:"message"`
	Type      string       `json:"type"`
	Data      entity.JSONB `json:"data"`
	IsRead    bool         `json:"is_read"`
	CreatedAt time.Time    `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Unread        int                    `json:"unread"`
}

func NewNotificationResponse(n entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Data:      n.Data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
