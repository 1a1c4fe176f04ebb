package models

// Conversation is a named thread participants exchange messages within. It
// is immutable after creation apart from gorm-managed timestamps.
type Conversation struct {
	Model
	Name string `json:"name" gorm:"not null" binding:"required"`
}

// ConversationParticipant joins a User to a Conversation. Rows are written
// once at conversation-creation time and never updated.
type ConversationParticipant struct {
	Model
	UserID         string `json:"user_id" gorm:"type:uuid;not null;index"`
	ConversationID string `json:"conversation_id" gorm:"type:uuid;not null;index"`
}

type CreateConversationRequest struct {
	Name         string   `json:"name"`
	Participants []string `json:"participants"`
}

// ConversationIDResponse carries the id of the conversation a create call
// resolved to, whether freshly created or already existing.
type ConversationIDResponse struct {
	Msg            string `json:"msg"`
	ConversationID string `json:"conversation_id"`
}

// ConversationView is the assembled retrieval payload: the conversation, its
// messages in ascending creation order, and its participants resolved to
// sanitized users.
type ConversationView struct {
	Msg                      string            `json:"msg"`
	Conversation             *Conversation     `json:"conversation"`
	Messages                 []MessageResponse `json:"messages"`
	ConversationParticipants []UserResponse    `json:"conversation_participants"`
}
