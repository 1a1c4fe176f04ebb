package db

import (
	"fmt"
	"sort"

	apiError "github.com/clemauthority/socialnet/errors"
	"github.com/clemauthority/socialnet/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrConversationExists reports that another conversation already holds the
// leading participant pair; the caller treats it as a soft success.
var ErrConversationExists = errors.New("conversation already exists for participant pair")

type ChatRepository interface {
	CreateConversationWithParticipants(conversation *models.Conversation, participantIDs []string) (string, error)
	FindConversationByID(id string) (*models.Conversation, error)
	FindParticipantsByConversation(conversationID string) ([]models.ConversationParticipant, error)
	FindParticipantsByUser(userID string) ([]models.ConversationParticipant, error)
	HasParticipant(userID, conversationID string) (bool, error)
	CreateMessage(message *models.Message) (*models.Message, error)
	FindMessageByID(id string) (*models.Message, error)
	FindMessagesByConversation(conversationID string) ([]models.Message, error)
}

type chatRepo struct {
	DB *gorm.DB
}

func NewChatRepo(db *GormDB) ChatRepository {
	return &chatRepo{db.DB}
}

// pairLockKey is order-independent so concurrent creates for (a,b) and (b,a)
// serialize on the same advisory lock.
func pairLockKey(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return fmt.Sprintf("conversation:%s:%s", ids[0], ids[1])
}

// CreateConversationWithParticipants writes the conversation and all its
// participant rows in one transaction, so a crash mid-way never leaves a
// conversation with a partial participant set. A transaction-scoped advisory
// lock on the leading pair serializes concurrent creates; the membership
// re-check runs under that lock, so the pair-uniqueness invariant holds even
// when two callers raced past the service-level dedup scan.
func (r *chatRepo) CreateConversationWithParticipants(conversation *models.Conversation, participantIDs []string) (string, error) {
	var conversationID string
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", pairLockKey(participantIDs[0], participantIDs[1])).Error; err != nil {
			return errors.Wrap(err, "could not take pair lock")
		}

		var existingID string
		err := tx.Raw(`SELECT a.conversation_id FROM conversation_participants a
			JOIN conversation_participants b ON a.conversation_id = b.conversation_id
			WHERE a.user_id = ? AND b.user_id = ? LIMIT 1`,
			participantIDs[0], participantIDs[1]).Scan(&existingID).Error
		if err != nil {
			return errors.Wrap(err, "could not re-check participant pair")
		}
		if existingID != "" {
			conversationID = existingID
			return ErrConversationExists
		}

		if err := tx.Create(conversation).Error; err != nil {
			return errors.Wrap(err, "could not create conversation")
		}
		// input order preserved; duplicate ids in the input produce
		// duplicate participant rows
		for _, userID := range participantIDs {
			participant := models.ConversationParticipant{
				UserID:         userID,
				ConversationID: conversation.ID,
			}
			if err := tx.Create(&participant).Error; err != nil {
				return errors.Wrap(err, "could not create conversation participant")
			}
		}
		conversationID = conversation.ID
		return nil
	})
	if errors.Is(err, ErrConversationExists) {
		return conversationID, ErrConversationExists
	}
	if err != nil {
		return "", err
	}
	return conversationID, nil
}

func (r *chatRepo) FindConversationByID(id string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.DB.Where("id = ?", id).First(&conversation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apiError.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not find conversation")
	}
	return &conversation, nil
}

// FindParticipantsByConversation returns the conversation's membership rows
// or the not-found sentinel; it never returns an empty slice.
func (r *chatRepo) FindParticipantsByConversation(conversationID string) ([]models.ConversationParticipant, error) {
	var participants []models.ConversationParticipant
	if err := r.DB.Where("conversation_id = ?", conversationID).Find(&participants).Error; err != nil {
		return nil, errors.Wrap(err, "could not find conversation participants")
	}
	if len(participants) == 0 {
		return nil, apiError.ErrNotFound
	}
	return participants, nil
}

func (r *chatRepo) FindParticipantsByUser(userID string) ([]models.ConversationParticipant, error) {
	var participants []models.ConversationParticipant
	if err := r.DB.Where("user_id = ?", userID).Find(&participants).Error; err != nil {
		return nil, errors.Wrap(err, "could not find user participations")
	}
	if len(participants) == 0 {
		return nil, apiError.ErrNotFound
	}
	return participants, nil
}

func (r *chatRepo) HasParticipant(userID, conversationID string) (bool, error) {
	var count int64
	err := r.DB.Model(&models.ConversationParticipant{}).
		Where("user_id = ? AND conversation_id = ?", userID, conversationID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "could not check participant")
	}
	return count > 0, nil
}

func (r *chatRepo) CreateMessage(message *models.Message) (*models.Message, error) {
	if err := r.DB.Create(message).Error; err != nil {
		return nil, errors.Wrap(err, "could not create message")
	}
	return message, nil
}

func (r *chatRepo) FindMessageByID(id string) (*models.Message, error) {
	var message models.Message
	err := r.DB.Where("id = ?", id).First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apiError.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not find message")
	}
	return &message, nil
}

func (r *chatRepo) FindMessagesByConversation(conversationID string) ([]models.Message, error) {
	var messages []models.Message
	if err := r.DB.Where("conversation_id = ?", conversationID).Find(&messages).Error; err != nil {
		return nil, errors.Wrap(err, "could not find messages")
	}
	if len(messages) == 0 {
		return nil, apiError.ErrNotFound
	}
	return messages, nil
}
