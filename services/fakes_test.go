package services

import (
	"fmt"
	"time"

	"github.com/clemauthority/socialnet/db"
	apiError "github.com/clemauthority/socialnet/errors"
	"github.com/clemauthority/socialnet/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// fakeChatRepo is an in-memory db.ChatRepository with the same not-found
// sentinel semantics as the gorm-backed implementation.
type fakeChatRepo struct {
	conversations map[string]*models.Conversation
	participants  []models.ConversationParticipant
	messages      map[string]*models.Message

	// failParticipantAt makes the n-th participant insert fail so tests can
	// check that nothing is persisted on a partial write.
	failParticipantAt int
	// dropAfterCreate makes the post-create re-read miss.
	dropAfterCreate bool

	clock time.Time
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		conversations:     map[string]*models.Conversation{},
		messages:          map[string]*models.Message{},
		failParticipantAt: -1,
		clock:             time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeChatRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeChatRepo) CreateConversationWithParticipants(conversation *models.Conversation, participantIDs []string) (string, error) {
	for _, p := range f.participants {
		if p.UserID != participantIDs[0] {
			continue
		}
		for _, q := range f.participants {
			if q.ConversationID == p.ConversationID && q.UserID == participantIDs[1] {
				return p.ConversationID, db.ErrConversationExists
			}
		}
	}

	conversation.ID = uuid.NewString()
	conversation.CreatedAt = f.tick()
	conversation.UpdatedAt = conversation.CreatedAt

	staged := make([]models.ConversationParticipant, 0, len(participantIDs))
	for i, userID := range participantIDs {
		if i == f.failParticipantAt {
			// nothing staged is kept, like a rolled-back transaction
			return "", errors.New("participant insert failed")
		}
		staged = append(staged, models.ConversationParticipant{
			Model:          models.Model{ID: uuid.NewString(), CreatedAt: f.tick()},
			UserID:         userID,
			ConversationID: conversation.ID,
		})
	}

	f.conversations[conversation.ID] = conversation
	f.participants = append(f.participants, staged...)
	return conversation.ID, nil
}

func (f *fakeChatRepo) FindConversationByID(id string) (*models.Conversation, error) {
	conversation, ok := f.conversations[id]
	if !ok {
		return nil, apiError.ErrNotFound
	}
	return conversation, nil
}

func (f *fakeChatRepo) FindParticipantsByConversation(conversationID string) ([]models.ConversationParticipant, error) {
	var out []models.ConversationParticipant
	for _, p := range f.participants {
		if p.ConversationID == conversationID {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, apiError.ErrNotFound
	}
	return out, nil
}

func (f *fakeChatRepo) FindParticipantsByUser(userID string) ([]models.ConversationParticipant, error) {
	var out []models.ConversationParticipant
	for _, p := range f.participants {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, apiError.ErrNotFound
	}
	return out, nil
}

func (f *fakeChatRepo) HasParticipant(userID, conversationID string) (bool, error) {
	for _, p := range f.participants {
		if p.UserID == userID && p.ConversationID == conversationID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChatRepo) CreateMessage(message *models.Message) (*models.Message, error) {
	message.ID = uuid.NewString()
	message.CreatedAt = f.tick()
	message.UpdatedAt = message.CreatedAt
	if !f.dropAfterCreate {
		stored := *message
		f.messages[message.ID] = &stored
	}
	return message, nil
}

func (f *fakeChatRepo) FindMessageByID(id string) (*models.Message, error) {
	message, ok := f.messages[id]
	if !ok {
		return nil, apiError.ErrNotFound
	}
	return message, nil
}

func (f *fakeChatRepo) FindMessagesByConversation(conversationID string) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, *m)
		}
	}
	if len(out) == 0 {
		return nil, apiError.ErrNotFound
	}
	return out, nil
}

// seedMessage plants a stored message with a fixed creation time.
func (f *fakeChatRepo) seedMessage(senderID, conversationID, content string, createdAt time.Time) {
	id := uuid.NewString()
	f.messages[id] = &models.Message{
		Model:          models.Model{ID: id, CreatedAt: createdAt, UpdatedAt: createdAt},
		SenderID:       senderID,
		ConversationID: conversationID,
		Content:        content,
	}
}

// fakeUserRepo is an in-memory db.UserRepository.
type fakeUserRepo struct {
	users     map[string]*models.User
	blacklist map[string]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:     map[string]*models.User{},
		blacklist: map[string]bool{},
	}
}

func (f *fakeUserRepo) seedUser(id, email, firstName, lastName string) *models.User {
	user := &models.User{
		Model:          models.Model{ID: id},
		Email:          email,
		FirstName:      firstName,
		LastName:       lastName,
		HashedPassword: "$2a$10$secret",
	}
	f.users[id] = user
	return user
}

func (f *fakeUserRepo) CreateUser(user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) IsEmailExist(email string) error {
	for _, u := range f.users {
		if u.Email == email {
			return fmt.Errorf("user with email %s exists", email)
		}
	}
	return nil
}

func (f *fakeUserRepo) FindUserByID(id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apiError.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apiError.ErrNotFound
}

func (f *fakeUserRepo) GetAllUsers() ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	if len(out) == 0 {
		return nil, apiError.ErrNotFound
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateUser(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) ResetPassword(userID, newPassword string) error {
	user, ok := f.users[userID]
	if !ok {
		return apiError.ErrNotFound
	}
	user.HashedPassword = newPassword
	return nil
}

func (f *fakeUserRepo) AddToBlackList(blacklist *models.Blacklist) error {
	f.blacklist[blacklist.Token] = true
	return nil
}

func (f *fakeUserRepo) TokenInBlacklist(token string) bool {
	return f.blacklist[token]
}
