package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/amistack/amistack/internal/core"
	"github.com/amistack/amistack/internal/models"
	"github.com/amistack/amistack/internal/store"
	"github.com/amistack/amistack/internal/validation"
)

type chatbotRequest struct {
	Name            string `json:"name"`
	Greeting        string `json:"greeting"`
	FallbackMessage string `json:"fallback_message"`
	IsActive        *bool  `json:"is_active"`
	Knowledge       string `json:"knowledge"`
}

// GET /api/chatbots
func (s *Server) handleListChatbots(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	bots, err := s.Store.ListChatbots(user.ID)
	if err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to list chatbots")
		return
	}
	writeJSON(w, http.StatusOK, bots)
}

// POST /api/chatbots
func (s *Server) handleCreateChatbot(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())

	var req chatbotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	v := validation.New().Required("name", req.Name)
	if !v.Valid() {
		writeError(w, http.StatusBadRequest, v.First())
		return
	}
	// Knowledge must decode, even when empty
	if _, err := core.ParseKnowledge(req.Knowledge); err != nil {
		writeError(w, http.StatusBadRequest, "knowledge must be a JSON list of {keywords, response}")
		return
	}

	bot := &models.Chatbot{
		UserID:          user.ID,
		Name:            req.Name,
		Greeting:        req.Greeting,
		FallbackMessage: req.FallbackMessage,
		IsActive:        true,
		Knowledge:       req.Knowledge,
	}
	if req.IsActive != nil {
		bot.IsActive = *req.IsActive
	}
	if bot.Greeting == "" {
		bot.Greeting = "Olá! Como posso ajudar?"
	}
	if bot.FallbackMessage == "" {
		bot.FallbackMessage = "Desculpe, não entendi. Pode reformular?"
	}

	if err := s.Store.CreateChatbot(bot); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to create chatbot")
		return
	}
	writeJSON(w, http.StatusCreated, bot)
}

// GET /api/chatbots/{chatbotID}
func (s *Server) handleGetChatbot(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	bot, err := s.Store.GetChatbot(user.ID, urlID(r, "chatbotID"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "chatbot not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load chatbot")
		return
	}
	writeJSON(w, http.StatusOK, bot)
}

// PUT /api/chatbots/{chatbotID}
func (s *Server) handleUpdateChatbot(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	bot, err := s.Store.GetChatbot(user.ID, urlID(r, "chatbotID"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "chatbot not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load chatbot")
		return
	}

	var req chatbotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	v := validation.New().Required("name", req.Name)
	if !v.Valid() {
		writeError(w, http.StatusBadRequest, v.First())
		return
	}
	if _, err := core.ParseKnowledge(req.Knowledge); err != nil {
		writeError(w, http.StatusBadRequest, "knowledge must be a JSON list of {keywords, response}")
		return
	}

	bot.Name = req.Name
	bot.Greeting = req.Greeting
	bot.FallbackMessage = req.FallbackMessage
	bot.Knowledge = req.Knowledge
	if req.IsActive != nil {
		bot.IsActive = *req.IsActive
	}

	if err := s.Store.UpdateChatbot(bot); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to update chatbot")
		return
	}
	writeJSON(w, http.StatusOK, bot)
}

// DELETE /api/chatbots/{chatbotID}
func (s *Server) handleDeleteChatbot(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	if err := s.Store.DeleteChatbot(user.ID, urlID(r, "chatbotID")); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "chatbot not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to delete chatbot")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GET /api/chatbots/{chatbotID}/conversations
func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	convs, err := s.Store.ListConversations(user.ID, urlID(r, "chatbotID"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "chatbot not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to list conversations")
		return
	}
	writeJSON(w, http.StatusOK, convs)
}

// ----------------------
// Public chat
// ----------------------

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID uint   `json:"conversationId"`
	VisitorName    string `json:"visitorName"`
	VisitorEmail   string `json:"visitorEmail"`
}

type chatResponse struct {
	ConversationID uint   `json:"conversationId"`
	BotMessage     string `json:"botMessage"`
	MessageID      uint   `json:"messageId"`
}

// POST /api/public/chatbots/{chatbotID}/chat
//
// Every call appends the visitor message and the bot reply and bumps
// the bot's message counter by 2; only the first message of a session
// creates the conversation and bumps the session counter.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	bot, err := s.Store.GetActiveChatbot(urlID(r, "chatbotID"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "chatbot not found")
			return
		}
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to load chatbot")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	// Resolve or start the conversation
	var conv *models.Conversation
	if req.ConversationID != 0 {
		conv, err = s.Store.GetConversation(bot.ID, req.ConversationID)
		if err != nil && err != store.ErrNotFound {
			s.Store.LogError(err)
			writeError(w, http.StatusInternalServerError, "failed to load conversation")
			return
		}
	}
	if conv == nil {
		conv = &models.Conversation{
			ChatbotID:    bot.ID,
			VisitorName:  req.VisitorName,
			VisitorEmail: req.VisitorEmail,
			StartedAt:    time.Now(),
		}
		if err := s.Store.StartConversation(conv); err != nil {
			s.Store.LogError(err)
			writeError(w, http.StatusInternalServerError, "failed to start conversation")
			return
		}
	}

	knowledge, err := core.ParseKnowledge(bot.Knowledge)
	if err != nil {
		// Broken knowledge JSON should not silence the bot
		s.Store.LogError(err)
		knowledge = nil
	}
	reply := core.MatchResponse(req.Message, knowledge, bot.Greeting, bot.FallbackMessage)

	visitorMsg := &models.ChatMessage{ConversationID: conv.ID, Role: "visitor", Content: req.Message}
	botMsg := &models.ChatMessage{ConversationID: conv.ID, Role: "bot", Content: reply}
	if err := s.Store.AppendExchange(bot.ID, visitorMsg, botMsg); err != nil {
		s.Store.LogError(err)
		writeError(w, http.StatusInternalServerError, "failed to record messages")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		ConversationID: conv.ID,
		BotMessage:     reply,
		MessageID:      botMsg.ID,
	})
}
