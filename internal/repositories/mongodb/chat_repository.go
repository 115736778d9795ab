package mongodb

import (
	"context"
	"fmt"
	"time"

	"firewatch/internal/models"
	"firewatch/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type chatRepository struct {
	collection *mongo.Collection
}

func NewChatRepository(db *mongo.Database) interfaces.ChatRepository {
	return &chatRepository{
		collection: db.Collection("chat_messages"),
	}
}

func (r *chatRepository) InsertMessage(ctx context.Context, message *models.ChatMessage) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}

	return nil
}

// GetConversation returns the most recent messages in chronological order.
// A limit of zero or less returns the whole conversation.
func (r *chatRepository) GetConversation(ctx context.Context, conversationID primitive.ObjectID, limit int) ([]*models.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []*models.ChatMessage
	for cursor.Next(ctx) {
		var message models.ChatMessage
		if err := cursor.Decode(&message); err != nil {
			return nil, fmt.Errorf("failed to decode chat message: %w", err)
		}
		messages = append(messages, &message)
	}

	// Reverse into oldest-first order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *chatRepository) GetUserConversations(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	raw, err := r.collection.Distinct(ctx, "conversation_id", bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}

	return ids, nil
}
