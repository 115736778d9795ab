package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
	ChatRoleSystem    ChatRole = "system"
)

type ChatMessage struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ConversationID primitive.ObjectID `json:"conversation_id" bson:"conversation_id"`
	UserID         primitive.ObjectID `json:"user_id" bson:"user_id"`
	Role           ChatRole           `json:"role" bson:"role"`
	Content        string             `json:"content" bson:"content"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
}

type ChatRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message" validate:"required"`
}

type ChatResponse struct {
	ConversationID primitive.ObjectID `json:"conversation_id"`
	Reply          string             `json:"reply"`
	CreatedAt      time.Time          `json:"created_at"`
}
