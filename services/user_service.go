package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/clemauthority/socialnet/config"
	"github.com/clemauthority/socialnet/db"
	apiError "github.com/clemauthority/socialnet/errors"
	"github.com/clemauthority/socialnet/models"
)

// UserService is the user-lookup side of the API: the chat core and the
// user-management endpoints both read through it, and everything it hands
// out is sanitized.
type UserService interface {
	GetUser(userID string) (*models.UserResponse, *apiError.Error)
	GetUserByEmail(email string) (*models.UserResponse, *apiError.Error)
	GetAllUsers() ([]models.UserResponse, *apiError.Error)
}

type userService struct {
	Config   *config.Config
	userRepo db.UserRepository
}

func NewUserService(userRepo db.UserRepository, conf *config.Config) UserService {
	return &userService{
		Config:   conf,
		userRepo: userRepo,
	}
}

func (s *userService) GetUser(userID string) (*models.UserResponse, *apiError.Error) {
	user, err := s.userRepo.FindUserByID(userID)
	if errors.Is(err, apiError.ErrNotFound) {
		return nil, apiError.New("User not found", http.StatusNotFound)
	}
	if err != nil {
		log.Printf("GetUser error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return user.Sanitize(), nil
}

func (s *userService) GetUserByEmail(email string) (*models.UserResponse, *apiError.Error) {
	user, err := s.userRepo.FindUserByEmail(email)
	if errors.Is(err, apiError.ErrNotFound) {
		return nil, apiError.New("User not found", http.StatusNotFound)
	}
	if err != nil {
		log.Printf("GetUserByEmail error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return user.Sanitize(), nil
}

func (s *userService) GetAllUsers() ([]models.UserResponse, *apiError.Error) {
	users, err := s.userRepo.GetAllUsers()
	if errors.Is(err, apiError.ErrNotFound) {
		return nil, apiError.New("No users found", http.StatusNotFound)
	}
	if err != nil {
		log.Printf("GetAllUsers error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	sanitized := make([]models.UserResponse, 0, len(users))
	for i := range users {
		sanitized = append(sanitized, *users[i].Sanitize())
	}
	return sanitized, nil
}
