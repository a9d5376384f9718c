package models

import "time"

// User is a tenant account. Every CRM entity below is scoped by UserID.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `json:"-"` // bcrypt hash
	APIToken     string    `gorm:"index" json:"-"`
	TokenExpiry  time.Time `json:"-"`

	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	Plan        string `json:"plan"` // free, starter, pro

	CreatedAt time.Time `json:"created_at"`
}

// Contact statuses form a closed set, validated at write time.
const (
	StatusNew       = "new"
	StatusActive    = "active"
	StatusQualified = "qualified"
	StatusInactive  = "inactive"
	StatusLost      = "lost"
	StatusClient    = "client"
)

// ContactStatuses lists every accepted contact status.
var ContactStatuses = []string{
	StatusNew, StatusActive, StatusQualified, StatusInactive, StatusLost, StatusClient,
}

// ValidContactStatus reports whether s is one of the accepted statuses.
func ValidContactStatus(s string) bool {
	for _, v := range ContactStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Contact is a CRM lead/person owned by a tenant.
type Contact struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index" json:"user_id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `gorm:"index" json:"email"`
	Phone     string `json:"phone"`

	Status    string `gorm:"default:new" json:"status"`
	LeadScore int    `gorm:"default:0" json:"lead_score"` // 0-100
	Source    string `json:"source"`                      // manual, form, import, chatbot
	Notes     string `json:"notes"`

	CompanyID *uint    `json:"company_id,omitempty"`
	Company   *Company `json:"company,omitempty"`

	Tags         []Tag         `gorm:"many2many:contact_tags;" json:"tags,omitempty"`
	Interactions []Interaction `gorm:"constraint:OnDelete:CASCADE" json:"interactions,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Company groups contacts under an organization.
type Company struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index" json:"user_id"`

	Name     string `json:"name"`
	Website  string `json:"website"`
	Industry string `json:"industry"`
	Size     string `json:"size"` // 1-10, 11-50, ...

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Interaction is a logged touchpoint with a contact.
type Interaction struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"index" json:"user_id"`
	ContactID uint `gorm:"index" json:"contact_id"`

	Type    string `json:"type"` // call, email, meeting, whatsapp, note
	Subject string `json:"subject"`
	Notes   string `json:"notes"`

	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// Tag is a user-scoped label, attached to contacts via contact_tags.
type Tag struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index:idx_tag_user_name,unique" json:"user_id"`

	Name  string `gorm:"index:idx_tag_user_name,unique" json:"name"`
	Color string `json:"color"`

	CreatedAt time.Time `json:"created_at"`
}

// Form is a lead-capture form. Fields holds the JSON-encoded field
// definitions as the builder UI produces them.
type Form struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index" json:"user_id"`

	Name           string `json:"name"`
	Slug           string `gorm:"uniqueIndex" json:"slug"`
	Fields         string `json:"fields"` // JSON: [{label,type,required},...]
	SubmitLabel    string `json:"submit_label"`
	SuccessMessage string `json:"success_message"`
	IsActive       bool   `gorm:"default:true" json:"is_active"`
	CreateContact  bool   `gorm:"default:true" json:"create_contact"`

	SubmissionCount int `gorm:"default:0" json:"submission_count"`

	Submissions []FormSubmission `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FormSubmission is one public submission of a form. Fields holds the
// submitted (label, value) pairs as JSON.
type FormSubmission struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	FormID uint `gorm:"index" json:"form_id"`

	Fields    string `json:"fields"` // JSON: [{label,value},...]
	VisitorIP string `json:"visitor_ip"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// LandingPage is a published marketing page with JSON block content.
type LandingPage struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index" json:"user_id"`

	Title           string `json:"title"`
	Slug            string `gorm:"uniqueIndex" json:"slug"`
	Content         string `json:"content"` // JSON block tree
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	IsPublished     bool   `gorm:"default:false" json:"is_published"`
	ViewCount       int    `gorm:"default:0" json:"view_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Chatbot answers visitor messages from an ordered keyword table.
// Knowledge is the JSON-encoded list of {keywords, response} rules.
type Chatbot struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index" json:"user_id"`

	Name            string `json:"name"`
	Greeting        string `json:"greeting"`
	FallbackMessage string `json:"fallback_message"`
	IsActive        bool   `gorm:"default:true" json:"is_active"`
	Knowledge       string `json:"knowledge"` // JSON: [{keywords:[],response},...]

	SessionCount int `gorm:"default:0" json:"session_count"`
	MessageCount int `gorm:"default:0" json:"message_count"`

	Conversations []Conversation `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Conversation is one visitor session with a chatbot.
type Conversation struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ChatbotID uint `gorm:"index" json:"chatbot_id"`

	VisitorName  string `json:"visitor_name"`
	VisitorEmail string `json:"visitor_email"`

	Messages []ChatMessage `gorm:"constraint:OnDelete:CASCADE" json:"messages,omitempty"`

	StartedAt time.Time `json:"started_at"`
}

// ChatMessage is a single utterance, visitor or bot authored.
type ChatMessage struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ConversationID uint `gorm:"index" json:"conversation_id"`

	Role    string `json:"role"` // visitor, bot
	Content string `json:"content"`

	CreatedAt time.Time `json:"created_at"`
}

// Workflow is a stored automation definition. Actions is JSON as the
// builder produces it.
type Workflow struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index" json:"user_id"`

	Name        string `json:"name"`
	TriggerType string `json:"trigger_type"` // form_submission, contact_created, score_threshold
	Actions     string `json:"actions"`      // JSON action list
	IsActive    bool   `gorm:"default:true" json:"is_active"`
	RunCount    int    `gorm:"default:0" json:"run_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subscription mirrors the tenant's Stripe subscription state,
// updated only by the webhook endpoint.
type Subscription struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex" json:"user_id"`

	StripeCustomerID     string `gorm:"index" json:"stripe_customer_id"`
	StripeSubscriptionID string `json:"stripe_subscription_id"`
	Plan                 string `json:"plan"`
	Status               string `json:"status"` // active, past_due, canceled

	CurrentPeriodEnd time.Time `json:"current_period_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
