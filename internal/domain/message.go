package domain

import "time"

// ContactMessage is a guest message from the contact form, listed and managed
// on the admin side.
type ContactMessage struct {
	ID      ID
	Name    string
	Email   string
	Subject string
	Body    string
	Read    bool
	SentAt  *time.Time
}

type RawContactMessage struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"message"`
	Read    bool   `json:"isRead"`
	SentAt  string `json:"createdAt"`
}

func (r RawContactMessage) Normalize() ContactMessage {
	return ContactMessage{
		ID:      r.ID,
		Name:    r.Name,
		Email:   r.Email,
		Subject: r.Subject,
		Body:    r.Body,
		Read:    r.Read,
		SentAt:  parseTime(r.SentAt),
	}
}

func NormalizeContactMessages(raw []RawContactMessage) []ContactMessage {
	msgs := make([]ContactMessage, 0, len(raw))
	for _, r := range raw {
		msgs = append(msgs, r.Normalize())
	}
	return msgs
}
