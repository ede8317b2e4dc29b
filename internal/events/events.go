package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/university-service/internal/models"
)

const (
	EventSource  = "university-service"
	EventVersion = "1.0"
)

// Account lifecycle event types
const (
	AccountCreated  = "account.created"
	AccountUpdated  = "account.updated"
	AccountDeleted  = "account.deleted"
	AccountLoggedIn = "account.logged_in"
)

// Event is the envelope published for every account change
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// AccountEventData identifies the account an event is about
type AccountEventData struct {
	AccountID uint            `json:"account_id"`
	Role      models.UserRole `json:"role"`
	Email     string          `json:"email"`
	Fields    []string        `json:"fields,omitempty"`
}

func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// NewAccountEvent builds an event for the given account. fields lists the
// changed keys on updates.
func NewAccountEvent(eventType string, account *models.Account, fields ...string) *Event {
	return NewEvent(eventType, AccountEventData{
		AccountID: account.ID(),
		Role:      account.Role(),
		Email:     account.User.Email,
		Fields:    fields,
	})
}

// EventPublisher delivers events to the message broker
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
