package services

import (
	"context"
	"strings"
	"time"

	"firewatch/internal/errs"
	"firewatch/internal/models"
	"firewatch/internal/repositories/interfaces"
	"firewatch/internal/utils"
	"firewatch/pkg/ai"
	"firewatch/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const chatSystemPrompt = "You are the assistant of a fire-service operations platform. " +
	"Help dispatchers and citizens with fire safety questions, incident reporting guidance " +
	"and general platform usage. Be concise. For an active emergency, always tell the user " +
	"to call the local emergency number first."

type ChatService interface {
	SendMessage(ctx context.Context, userID primitive.ObjectID, request *models.ChatRequest) (*models.ChatResponse, error)
	GetConversation(ctx context.Context, userID, conversationID primitive.ObjectID) ([]*models.ChatMessage, error)
	ListConversations(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
}

type chatService struct {
	chatRepo interfaces.ChatRepository
	client   *ai.Client
	logger   *logger.Logger
	now      func() time.Time
}

func NewChatService(chatRepo interfaces.ChatRepository, client *ai.Client, logger *logger.Logger) ChatService {
	return &chatService{
		chatRepo: chatRepo,
		client:   client,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *chatService) SendMessage(ctx context.Context, userID primitive.ObjectID, request *models.ChatRequest) (*models.ChatResponse, error) {
	message := strings.TrimSpace(request.Message)
	if message == "" {
		return nil, errs.Validationf("message is required")
	}
	if len(message) > utils.MaxChatMessageLength {
		return nil, errs.Validationf("message exceeds %d characters", utils.MaxChatMessageLength)
	}
	if s.client == nil {
		return nil, errs.Wrap(errs.ErrUnexpected, "chat assistant is not configured")
	}

	conversationID := primitive.NewObjectID()
	var history []*models.ChatMessage
	if request.ConversationID != "" {
		id, err := primitive.ObjectIDFromHex(request.ConversationID)
		if err != nil {
			return nil, errs.Validationf("invalid conversation id %q", request.ConversationID)
		}
		conversationID = id

		history, err = s.chatRepo.GetConversation(ctx, conversationID, utils.ChatHistoryLimit)
		if err != nil {
			return nil, errs.Wrap(err, "loading conversation history")
		}
	}

	messages := make([]ai.Message, 0, len(history)+2)
	messages = append(messages, ai.Message{Role: string(models.ChatRoleSystem), Content: chatSystemPrompt})
	for _, m := range history {
		messages = append(messages, ai.Message{Role: string(m.Role), Content: m.Content})
	}
	messages = append(messages, ai.Message{Role: string(models.ChatRoleUser), Content: message})

	reply, err := s.client.Complete(ctx, messages)
	if err != nil {
		return nil, errs.Wrap(err, "completing chat")
	}

	now := s.now()
	userMessage := &models.ChatMessage{
		ConversationID: conversationID,
		UserID:         userID,
		Role:           models.ChatRoleUser,
		Content:        message,
		CreatedAt:      now,
	}
	assistantMessage := &models.ChatMessage{
		ConversationID: conversationID,
		UserID:         userID,
		Role:           models.ChatRoleAssistant,
		Content:        reply,
		CreatedAt:      now,
	}

	if err := s.chatRepo.InsertMessage(ctx, userMessage); err != nil {
		return nil, errs.Wrap(err, "storing user message")
	}
	if err := s.chatRepo.InsertMessage(ctx, assistantMessage); err != nil {
		return nil, errs.Wrap(err, "storing assistant reply")
	}

	return &models.ChatResponse{
		ConversationID: conversationID,
		Reply:          reply,
		CreatedAt:      now,
	}, nil
}

func (s *chatService) GetConversation(ctx context.Context, userID, conversationID primitive.ObjectID) ([]*models.ChatMessage, error) {
	messages, err := s.chatRepo.GetConversation(ctx, conversationID, 0)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, errs.NotFoundf("conversation %s", conversationID.Hex())
	}
	// Conversations are private to their owner.
	if messages[0].UserID != userID {
		return nil, errs.NotFoundf("conversation %s", conversationID.Hex())
	}
	return messages, nil
}

func (s *chatService) ListConversations(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return s.chatRepo.GetUserConversations(ctx, userID)
}
