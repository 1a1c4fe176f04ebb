package services

import (
	"errors"
	"log"
	"net/http"
	"sort"

	"github.com/clemauthority/socialnet/config"
	"github.com/clemauthority/socialnet/db"
	apiError "github.com/clemauthority/socialnet/errors"
	"github.com/clemauthority/socialnet/models"
)

// ChatService owns conversation creation, message creation and conversation
// retrieval. CreateConversation reports the status it resolved to because a
// dedup hit is a 200 soft success while a fresh create is a 201.
type ChatService interface {
	CreateConversation(req *models.CreateConversationRequest) (*models.ConversationIDResponse, int, *apiError.Error)
	CreateMessage(req *models.CreateMessageRequest) (*models.MessageResponse, *apiError.Error)
	GetConversation(conversationID string) (*models.ConversationView, *apiError.Error)
	ConfirmConversation(userID, friendID string) (bool, string, *apiError.Error)
}

type chatService struct {
	Config   *config.Config
	chatRepo db.ChatRepository
	userRepo db.UserRepository
}

func NewChatService(chatRepo db.ChatRepository, userRepo db.UserRepository, conf *config.Config) ChatService {
	return &chatService{
		Config:   conf,
		chatRepo: chatRepo,
		userRepo: userRepo,
	}
}

func (s *chatService) CreateConversation(req *models.CreateConversationRequest) (*models.ConversationIDResponse, int, *apiError.Error) {
	if req == nil || req.Name == "" {
		return nil, 0, apiError.New("conversation name is not given", http.StatusBadRequest)
	}
	if len(req.Participants) < 2 {
		return nil, 0, apiError.New("conversation participant cannot be less than 2", http.StatusBadRequest)
	}

	exists, conversationID, apiErr := s.ConfirmConversation(req.Participants[0], req.Participants[1])
	if apiErr != nil {
		return nil, 0, apiErr
	}
	if exists {
		return &models.ConversationIDResponse{
			Msg:            "Conversation already exists, confirmation successful, please see the conversation id",
			ConversationID: conversationID,
		}, http.StatusOK, nil
	}

	conversation := &models.Conversation{Name: req.Name}
	conversationID, err := s.chatRepo.CreateConversationWithParticipants(conversation, req.Participants)
	if errors.Is(err, db.ErrConversationExists) {
		// a concurrent create won the pair lock first
		return &models.ConversationIDResponse{
			Msg:            "Conversation already exists, confirmation successful, please see the conversation id",
			ConversationID: conversationID,
		}, http.StatusOK, nil
	}
	if err != nil {
		log.Printf("CreateConversation error: %v", err)
		return nil, 0, apiError.ErrInternalServerError
	}

	return &models.ConversationIDResponse{
		Msg:            "new conversation created successfully, participants added.",
		ConversationID: conversationID,
	}, http.StatusCreated, nil
}

// ConfirmConversation checks whether any conversation already exists between
// the two users: for every participation of userID, probe friendID's
// membership in the same conversation. First match wins. The scan is
// O(participations-of-user) storage lookups, fine at current scale.
func (s *chatService) ConfirmConversation(userID, friendID string) (bool, string, *apiError.Error) {
	participations, err := s.chatRepo.FindParticipantsByUser(userID)
	if errors.Is(err, apiError.ErrNotFound) {
		return false, "", nil
	}
	if err != nil {
		log.Printf("ConfirmConversation error: %v", err)
		return false, "", apiError.ErrInternalServerError
	}

	for _, participation := range participations {
		found, err := s.chatRepo.HasParticipant(friendID, participation.ConversationID)
		if err != nil {
			log.Printf("ConfirmConversation error: %v", err)
			return false, "", apiError.ErrInternalServerError
		}
		if found {
			return true, participation.ConversationID, nil
		}
	}
	return false, "", nil
}

func (s *chatService) CreateMessage(req *models.CreateMessageRequest) (*models.MessageResponse, *apiError.Error) {
	if req == nil || req.SenderID == "" || req.ConversationID == "" {
		return nil, apiError.New("sender_id or conversation_id not passed", http.StatusBadRequest)
	}

	participants, err := s.chatRepo.FindParticipantsByConversation(req.ConversationID)
	if err != nil && !errors.Is(err, apiError.ErrNotFound) {
		log.Printf("CreateMessage error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	senderInConversation := false
	for _, participant := range participants {
		if participant.UserID == req.SenderID {
			senderInConversation = true
			break
		}
	}
	if !senderInConversation {
		return nil, apiError.New("This sender id can't be found among the conversation participants", http.StatusNotFound)
	}

	message := &models.Message{
		SenderID:       req.SenderID,
		ConversationID: req.ConversationID,
		Content:        req.Content,
		Image:          req.Image,
		Video:          req.Video,
	}
	if _, err := s.chatRepo.CreateMessage(message); err != nil {
		log.Printf("CreateMessage error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	// re-read by id and enrich with the sender's identity
	stored, err := s.chatRepo.FindMessageByID(message.ID)
	if errors.Is(err, apiError.ErrNotFound) {
		// should not happen under correct storage semantics; answer with
		// the degraded payload instead of failing the create
		log.Printf("CreateMessage: message %s vanished after create", message.ID)
		return &models.MessageResponse{Msg: "message not found"}, nil
	}
	if err != nil {
		log.Printf("CreateMessage error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return s.enrichMessage(stored), nil
}

func (s *chatService) GetConversation(conversationID string) (*models.ConversationView, *apiError.Error) {
	conversation, err := s.chatRepo.FindConversationByID(conversationID)
	if errors.Is(err, apiError.ErrNotFound) {
		return nil, apiError.New("No conversation matched conversation_id in storage", http.StatusNotFound)
	}
	if err != nil {
		log.Printf("GetConversation error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	participants, err := s.chatRepo.FindParticipantsByConversation(conversationID)
	if errors.Is(err, apiError.ErrNotFound) {
		return nil, apiError.New("error, conversation participants not found in this conversation", http.StatusNotFound)
	}
	if err != nil {
		log.Printf("GetConversation error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	// no messages is a valid empty state, distinct from missing participants
	messages := make([]models.MessageResponse, 0)
	storedMessages, err := s.chatRepo.FindMessagesByConversation(conversationID)
	if err != nil && !errors.Is(err, apiError.ErrNotFound) {
		log.Printf("GetConversation error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	for i := range storedMessages {
		messages = append(messages, *s.enrichMessage(&storedMessages[i]))
	}

	// canonical display ordering: ascending by creation time
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	// resolve participant rows to sanitized users; rows without a matching
	// user are dropped from the output
	resolved := make([]models.UserResponse, 0, len(participants))
	for _, participant := range participants {
		user, err := s.userRepo.FindUserByID(participant.UserID)
		if errors.Is(err, apiError.ErrNotFound) {
			log.Printf("GetConversation: dropping participant %s, no matching user", participant.UserID)
			continue
		}
		if err != nil {
			log.Printf("GetConversation error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		resolved = append(resolved, *user.Sanitize())
	}

	return &models.ConversationView{
		Msg:                      "conversation retrieved successfully",
		Conversation:             conversation,
		Messages:                 messages,
		ConversationParticipants: resolved,
	}, nil
}

// enrichMessage attaches the sender's sanitized identity. A sender that no
// longer resolves is marked on the message rather than dropped, unlike the
// participant path.
func (s *chatService) enrichMessage(message *models.Message) *models.MessageResponse {
	enriched := &models.MessageResponse{Message: *message}
	sender, err := s.userRepo.FindUserByID(message.SenderID)
	if errors.Is(err, apiError.ErrNotFound) {
		enriched.SenderError = "User not found"
		return enriched
	}
	if err != nil {
		log.Printf("enrichMessage error: %v", err)
		enriched.SenderError = "could not resolve sender"
		return enriched
	}
	enriched.Sender = sender.Sanitize()
	return enriched
}
