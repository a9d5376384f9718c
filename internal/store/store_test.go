package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/amistack/amistack/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	st, err := NewStore("sqlite", dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st
}

func TestCreateContactWithTags(t *testing.T) {
	st := newTestStore(t)

	vip, err := st.FindOrCreateTag(1, "vip")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	hot, err := st.FindOrCreateTag(1, "quente")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	c := &models.Contact{UserID: 1, FirstName: "Bruno", Status: models.StatusNew}
	if err := st.CreateContactWithTags(c, []models.Tag{*vip, *hot}); err != nil {
		t.Fatalf("create contact: %v", err)
	}

	got, err := st.GetContact(1, c.ID)
	if err != nil {
		t.Fatalf("get contact: %v", err)
	}
	if len(got.Tags) != 2 {
		t.Fatalf("tags attached = %d, want 2", len(got.Tags))
	}
}

func TestDeleteContactCascades(t *testing.T) {
	st := newTestStore(t)

	tag, err := st.FindOrCreateTag(1, "vip")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	c := &models.Contact{UserID: 1, FirstName: "Ana", Status: models.StatusNew}
	if err := st.CreateContactWithTags(c, []models.Tag{*tag}); err != nil {
		t.Fatalf("create contact: %v", err)
	}
	if err := st.CreateInteraction(&models.Interaction{UserID: 1, ContactID: c.ID, Type: "call"}); err != nil {
		t.Fatalf("create interaction: %v", err)
	}

	if err := st.DeleteContact(1, c.ID); err != nil {
		t.Fatalf("delete contact: %v", err)
	}

	var n int64
	st.DB.Model(&models.Interaction{}).Where("contact_id = ?", c.ID).Count(&n)
	if n != 0 {
		t.Errorf("interactions left after delete: %d", n)
	}
	st.DB.Table("contact_tags").Where("contact_id = ?", c.ID).Count(&n)
	if n != 0 {
		t.Errorf("tag links left after delete: %d", n)
	}

	if err := st.DeleteContact(1, c.ID); err != ErrNotFound {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestDeleteChatbotCascades(t *testing.T) {
	st := newTestStore(t)

	b := &models.Chatbot{UserID: 1, Name: "Atendente", IsActive: true}
	if err := st.CreateChatbot(b); err != nil {
		t.Fatalf("create chatbot: %v", err)
	}
	conv := &models.Conversation{ChatbotID: b.ID, StartedAt: time.Now()}
	if err := st.StartConversation(conv); err != nil {
		t.Fatalf("start conversation: %v", err)
	}
	err := st.AppendExchange(b.ID,
		&models.ChatMessage{ConversationID: conv.ID, Role: "visitor", Content: "oi"},
		&models.ChatMessage{ConversationID: conv.ID, Role: "bot", Content: "olá"})
	if err != nil {
		t.Fatalf("append exchange: %v", err)
	}

	if err := st.DeleteChatbot(1, b.ID); err != nil {
		t.Fatalf("delete chatbot: %v", err)
	}

	var n int64
	st.DB.Model(&models.Conversation{}).Where("chatbot_id = ?", b.ID).Count(&n)
	if n != 0 {
		t.Errorf("conversations left after delete: %d", n)
	}
	st.DB.Model(&models.ChatMessage{}).Where("conversation_id = ?", conv.ID).Count(&n)
	if n != 0 {
		t.Errorf("messages left after delete: %d", n)
	}

	if err := st.DeleteChatbot(1, b.ID); err != ErrNotFound {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}
