package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"firewatch/internal/errs"
	"firewatch/internal/models"
	"firewatch/internal/utils"
	"firewatch/pkg/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeChatRepo struct {
	messages []*models.ChatMessage
}

func (r *fakeChatRepo) InsertMessage(ctx context.Context, message *models.ChatMessage) error {
	message.ID = primitive.NewObjectID()
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeChatRepo) GetConversation(ctx context.Context, conversationID primitive.ObjectID, limit int) ([]*models.ChatMessage, error) {
	var out []*models.ChatMessage
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *fakeChatRepo) GetUserConversations(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	seen := map[primitive.ObjectID]bool{}
	var out []primitive.ObjectID
	for _, m := range r.messages {
		if m.UserID == userID && !seen[m.ConversationID] {
			seen[m.ConversationID] = true
			out = append(out, m.ConversationID)
		}
	}
	return out, nil
}

// completionStub answers like an OpenAI-compatible endpoint and records the
// last prompt it saw.
func completionStub(t *testing.T, reply string) (*httptest.Server, *[]map[string]string) {
	t.Helper()

	var lastMessages []map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)

		var body struct {
			Messages []map[string]string `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		lastMessages = body.Messages

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		})
	}))
	t.Cleanup(server.Close)
	return server, &lastMessages
}

func newTestChatService(t *testing.T, repo *fakeChatRepo, serverURL string) *chatService {
	t.Helper()
	client := ai.NewClient(&ai.Config{BaseURL: serverURL, Model: "test-model", Timeout: 5 * time.Second})
	svc := NewChatService(repo, client, testLogger(t)).(*chatService)
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC) }
	return svc
}

func TestSendMessageStoresBothSides(t *testing.T) {
	server, prompt := completionStub(t, "Call 911 first, then evacuate.")
	repo := &fakeChatRepo{}
	svc := newTestChatService(t, repo, server.URL)
	userID := primitive.NewObjectID()

	response, err := svc.SendMessage(context.Background(), userID, &models.ChatRequest{
		Message: "There is smoke in my kitchen",
	})
	require.NoError(t, err)

	assert.Equal(t, "Call 911 first, then evacuate.", response.Reply)
	assert.False(t, response.ConversationID.IsZero())

	require.Len(t, repo.messages, 2)
	assert.Equal(t, models.ChatRoleUser, repo.messages[0].Role)
	assert.Equal(t, models.ChatRoleAssistant, repo.messages[1].Role)
	assert.Equal(t, response.ConversationID, repo.messages[0].ConversationID)

	// System prompt always leads the request.
	require.NotEmpty(t, *prompt)
	assert.Equal(t, "system", (*prompt)[0]["role"])
}

func TestSendMessageContinuesConversation(t *testing.T) {
	server, prompt := completionStub(t, "ok")
	repo := &fakeChatRepo{}
	svc := newTestChatService(t, repo, server.URL)
	userID := primitive.NewObjectID()

	first, err := svc.SendMessage(context.Background(), userID, &models.ChatRequest{Message: "hello"})
	require.NoError(t, err)

	second, err := svc.SendMessage(context.Background(), userID, &models.ChatRequest{
		ConversationID: first.ConversationID.Hex(),
		Message:        "and another thing",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ConversationID, second.ConversationID)
	// system + 2 history + new user message
	assert.Len(t, *prompt, 4)
}

func TestSendMessageValidation(t *testing.T) {
	server, _ := completionStub(t, "ok")
	svc := newTestChatService(t, &fakeChatRepo{}, server.URL)
	userID := primitive.NewObjectID()

	_, err := svc.SendMessage(context.Background(), userID, &models.ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.SendMessage(context.Background(), userID, &models.ChatRequest{
		Message: strings.Repeat("x", utils.MaxChatMessageLength+1),
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.SendMessage(context.Background(), userID, &models.ChatRequest{
		ConversationID: "nope",
		Message:        "hello",
	})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestGetConversationHidesOtherUsers(t *testing.T) {
	server, _ := completionStub(t, "ok")
	repo := &fakeChatRepo{}
	svc := newTestChatService(t, repo, server.URL)

	owner := primitive.NewObjectID()
	response, err := svc.SendMessage(context.Background(), owner, &models.ChatRequest{Message: "hello"})
	require.NoError(t, err)

	messages, err := svc.GetConversation(context.Background(), owner, response.ConversationID)
	require.NoError(t, err)
	assert.Len(t, messages, 2)

	_, err = svc.GetConversation(context.Background(), primitive.NewObjectID(), response.ConversationID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
