package interfaces

import (
	"context"

	"firewatch/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatRepository interface {
	InsertMessage(ctx context.Context, message *models.ChatMessage) error
	GetConversation(ctx context.Context, conversationID primitive.ObjectID, limit int) ([]*models.ChatMessage, error)
	GetUserConversations(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
}
