// Package model defines the core friend and contact-log data types.
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/lowhung/wagwan/internal/config"
)

// Friend represents a tracked relationship with a reminder cadence.
type Friend struct {
	// ID is a stable unique identifier, assigned at creation, immutable.
	ID string `json:"id"`

	// Name is the display name. Never empty after trimming.
	Name string `json:"name"`

	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Notes string `json:"notes,omitempty"`

	// Photo is an opaque binary payload. The core never interprets it.
	Photo []byte `json:"photo,omitempty"`

	// ReminderIntervalDays is the desired number of days between contacts.
	// Always positive; typically one of {7, 14, 30, 90}.
	ReminderIntervalDays int `json:"reminder_interval_days"`

	// CreatedAt is immutable, set at construction.
	CreatedAt time.Time `json:"created_at"`

	// LastContactedAt is nil when the friend has never been contacted.
	LastContactedAt *time.Time `json:"last_contacted_at,omitempty"`

	// CalendarEventID is the opaque handle of the external reminder artifact,
	// owned by the calendar collaborator.
	CalendarEventID string `json:"calendar_event_id,omitempty"`

	// CurrentStreak counts consecutive on-time contact intervals.
	CurrentStreak int `json:"current_streak"`

	// LongestStreak is monotonically non-decreasing and always >= CurrentStreak.
	LongestStreak int `json:"longest_streak"`

	// LastStreakDate marks the calendar day of the most recent
	// streak-qualifying contact. Nil until the first qualifying contact.
	LastStreakDate *time.Time `json:"last_streak_date,omitempty"`
}

// Validation errors surfaced at the boundary where user input enters the
// system, before any state is constructed or mutated.
var (
	ErrNameRequired     = errors.New(config.ErrNameRequired)
	ErrIntervalPositive = errors.New(config.ErrIntervalPositive)
	ErrUnknownMethod    = errors.New(config.ErrUnknownMethod)
)

// Validate checks the boundary invariants: non-empty trimmed name and a
// positive reminder interval. No partial save may occur on failure.
func (f *Friend) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrNameRequired
	}
	if f.ReminderIntervalDays <= 0 {
		return ErrIntervalPositive
	}
	return nil
}

// ContactLog is an immutable-after-creation record of one interaction.
// It belongs to exactly one Friend and is destroyed only as a cascade of its
// owner's destruction.
type ContactLog struct {
	ID          string    `json:"id"`
	FriendID    string    `json:"friend_id"`
	ContactedAt time.Time `json:"contacted_at"`
	Method      Method    `json:"method"`
	Notes       string    `json:"notes,omitempty"`
}

// Method is the closed enumeration of ways a contact can happen. The core
// only needs the tag for storage and equality; icons and labels live in the
// presentation layer.
type Method string

const (
	MethodCall     Method = "call"
	MethodText     Method = "text"
	MethodInPerson Method = "in-person"
	MethodVideo    Method = "video"
	MethodEmail    Method = "email"
	MethodSocial   Method = "social"
	MethodOther    Method = "other"
)

// Methods lists every valid contact method, in display order.
var Methods = []Method{
	MethodCall,
	MethodText,
	MethodInPerson,
	MethodVideo,
	MethodEmail,
	MethodSocial,
	MethodOther,
}

// ParseMethod converts user input into a Method, case-insensitively.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Methods {
		if m == v {
			return v, nil
		}
	}
	return "", ErrUnknownMethod
}
