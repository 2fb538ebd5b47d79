// Package profile holds the per-session personalization types.
package profile

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yojanadost/yojana/internal/domain"
)

// SessionID identifies an anonymous visitor.
type SessionID string

// NewSessionID mints a random session id.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// ParseSessionID validates a session id received from a client.
func ParseSessionID(s string) (SessionID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidSession, s)
	}
	return SessionID(id.String()), nil
}

// Preferences are the notification and locale settings of a session.
type Preferences struct {
	EmailNotifications bool   `json:"emailNotifications"`
	SMSNotifications   bool   `json:"smsNotifications"`
	PushNotifications  bool   `json:"pushNotifications"`
	Language           string `json:"language"`
	Timezone           string `json:"timezone"`
	ProfileVisible     bool   `json:"profileVisibility"`
	DataSharing        bool   `json:"dataSharing"`
}

// DefaultPreferences returns the settings used when none were saved.
func DefaultPreferences() Preferences {
	return Preferences{
		EmailNotifications: true,
		SMSNotifications:   true,
		PushNotifications:  false,
		Language:           "en",
		Timezone:           "IST",
		ProfileVisible:     true,
		DataSharing:        false,
	}
}

// Validate checks language and timezone.
func (p Preferences) Validate() error {
	lang := strings.TrimSpace(p.Language)
	if n := len(lang); n < 2 || n > 5 {
		return fmt.Errorf("%w: language must be 2-5 characters, got %q", domain.ErrInvalidPreferences, p.Language)
	}
	if strings.TrimSpace(p.Timezone) == "" {
		return fmt.Errorf("%w: timezone is required", domain.ErrInvalidPreferences)
	}
	return nil
}
