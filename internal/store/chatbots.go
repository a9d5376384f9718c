package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/amistack/amistack/internal/models"
)

// ----------------------
// Chatbots
// ----------------------

func (s *Store) ListChatbots(userID uint) ([]models.Chatbot, error) {
	var bots []models.Chatbot
	err := s.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&bots).Error
	return bots, err
}

func (s *Store) GetChatbot(userID, id uint) (*models.Chatbot, error) {
	var b models.Chatbot
	err := s.DB.Where("user_id = ?", userID).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetActiveChatbot is the public lookup. Inactive bots are treated as
// missing so embeds of a paused bot 404 instead of answering.
func (s *Store) GetActiveChatbot(id uint) (*models.Chatbot, error) {
	var b models.Chatbot
	err := s.DB.Where("is_active = ?", true).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) CreateChatbot(b *models.Chatbot) error {
	return s.DB.Create(b).Error
}

func (s *Store) UpdateChatbot(b *models.Chatbot) error {
	return s.DB.Save(b).Error
}

// DeleteChatbot removes the bot and cascades to its conversations and
// their messages in one transaction.
func (s *Store) DeleteChatbot(userID, id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ?", userID).Delete(&models.Chatbot{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		var convIDs []uint
		if err := tx.Model(&models.Conversation{}).Where("chatbot_id = ?", id).Pluck("id", &convIDs).Error; err != nil {
			return err
		}
		if len(convIDs) > 0 {
			if err := tx.Where("conversation_id IN ?", convIDs).Delete(&models.ChatMessage{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("chatbot_id = ?", id).Delete(&models.Conversation{}).Error
	})
}

// ----------------------
// Conversations
// ----------------------

func (s *Store) GetConversation(chatbotID, id uint) (*models.Conversation, error) {
	var c models.Conversation
	err := s.DB.Where("chatbot_id = ?", chatbotID).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListConversations(userID, chatbotID uint) ([]models.Conversation, error) {
	if _, err := s.GetChatbot(userID, chatbotID); err != nil {
		return nil, err
	}
	var convs []models.Conversation
	err := s.DB.Where("chatbot_id = ?", chatbotID).
		Preload("Messages").Order("started_at desc").Find(&convs).Error
	return convs, err
}

// StartConversation creates the session and bumps the bot's session
// counter in one transaction.
func (s *Store) StartConversation(c *models.Conversation) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Model(&models.Chatbot{}).Where("id = ?", c.ChatbotID).
			Update("session_count", gorm.Expr("session_count + 1")).Error
	})
}

// AppendExchange stores the visitor and bot messages and bumps the
// bot's message counter by two, atomically.
func (s *Store) AppendExchange(botID uint, visitor, bot *models.ChatMessage) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(visitor).Error; err != nil {
			return err
		}
		if err := tx.Create(bot).Error; err != nil {
			return err
		}
		return tx.Model(&models.Chatbot{}).Where("id = ?", botID).
			Update("message_count", gorm.Expr("message_count + 2")).Error
	})
}
