//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxContactNameLen    = 120
	maxContactEmailLen   = 254
	maxContactMessageLen = 5000
)

// MessageStatus represents the read state of a contact message.
type MessageStatus string

const (
	MessageStatusNew      MessageStatus = "new"
	MessageStatusRead     MessageStatus = "read"
	MessageStatusArchived MessageStatus = "archived"
)

// Valid reports whether the message status is supported.
func (s MessageStatus) Valid() bool {
	switch s {
	case MessageStatusNew, MessageStatusRead, MessageStatusArchived:
		return true
	default:
		return false
	}
}

// String returns the string representation of the message status.
func (s MessageStatus) String() string {
	return string(s)
}

// ParseMessageStatus normalizes a status string and reports whether it is supported.
func ParseMessageStatus(value string) (MessageStatus, bool) {
	status := MessageStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// Message represents a contact-form message stored by the backend.
type Message struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Message   string        `json:"message"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// MessagesFilter controls client-side filtering of the inbox list.
// Query matches name, email, and body case-insensitively; Status
// narrows to a single state, with empty meaning all.
type MessagesFilter struct {
	Query  string
	Status MessageStatus
}

// Matches reports whether the message passes the filter.
func (f MessagesFilter) Matches(m Message) bool {
	if f.Status != "" && m.Status != f.Status {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Name), q) ||
		strings.Contains(strings.ToLower(m.Email), q) ||
		strings.Contains(strings.ToLower(m.Message), q)
}

// FilterMessages returns the messages passing the filter, preserving order.
func FilterMessages(messages []Message, f MessagesFilter) []Message {
	out := make([]Message, 0, len(messages))
	for _, m := range messages {
		if f.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}

// SortMessagesByNewest orders messages by CreatedAt descending. Stable
// so equal timestamps keep the backend's order.
func SortMessagesByNewest(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
}

// CountByStatus returns the number of messages with the given status.
func CountByStatus(messages []Message, status MessageStatus) int {
	n := 0
	for _, m := range messages {
		if m.Status == status {
			n++
		}
	}
	return n
}

// MessageStats holds per-status counts over the whole inbox. The stats
// describe the unfiltered list even when a filter narrows the view.
type MessageStats struct {
	Total    int
	New      int
	Read     int
	Archived int
}

// CountMessages tallies the inbox by status.
func CountMessages(messages []Message) MessageStats {
	stats := MessageStats{Total: len(messages)}
	for _, m := range messages {
		switch m.Status {
		case MessageStatusNew:
			stats.New++
		case MessageStatusRead:
			stats.Read++
		case MessageStatusArchived:
			stats.Archived++
		}
	}
	return stats
}

// ContactRequest represents a visitor submission of the public contact form.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate validates ContactRequest and trims its fields.
func (r *ContactRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Message = strings.TrimSpace(r.Message)

	if r.Name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Name) > maxContactNameLen {
		return errors.New("name cannot exceed 120 characters")
	}
	if r.Email == "" {
		return errors.New("email is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Email) > maxContactEmailLen {
		return errors.New("email cannot exceed 254 characters")
	}
	at := strings.Index(r.Email, "@")
	if at <= 0 || at == len(r.Email)-1 || strings.ContainsAny(r.Email, " \t") {
		return errors.New("email is not valid")
	}
	if r.Message == "" {
		return errors.New("message is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Message) > maxContactMessageLen {
		return errors.New("message cannot exceed 5000 characters")
	}
	return nil
}
