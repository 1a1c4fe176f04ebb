package models

// Message is a single message inside a conversation. Content, Image and
// Video are all optional at the storage level; callers are expected to send
// at least one.
type Message struct {
	Model
	SenderID       string `json:"sender_id" gorm:"type:uuid;not null;index"`
	ConversationID string `json:"conversation_id" gorm:"type:uuid;not null;index"`
	Content        string `json:"content,omitempty"`
	Image          string `json:"image,omitempty"`
	Video          string `json:"video,omitempty"`
}

// CreateMessageRequest carries the validated inputs for message creation.
// Image and Video hold storage URLs, filled in after media upload.
type CreateMessageRequest struct {
	SenderID       string `json:"sender_id"`
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content,omitempty"`
	Image          string `json:"image,omitempty"`
	Video          string `json:"video,omitempty"`
}

// MessageResponse is a message enriched with its sender's sanitized
// identity. Msg is only set on the degraded post-create path where the
// stored row could not be re-read; SenderError is set when the sender id no
// longer resolves to a user.
type MessageResponse struct {
	Message
	Msg         string        `json:"msg,omitempty"`
	Sender      *UserResponse `json:"sender,omitempty"`
	SenderError string        `json:"sender_error,omitempty"`
}
