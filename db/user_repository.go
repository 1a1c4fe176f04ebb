package db

import (
	"log"

	apiError "github.com/clemauthority/socialnet/errors"
	"github.com/clemauthority/socialnet/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	IsEmailExist(email string) error
	FindUserByID(id string) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	UpdateUser(user *models.User) error
	ResetPassword(userID, newPassword string) error
	AddToBlackList(blacklist *models.Blacklist) error
	TokenInBlacklist(token string) bool
}

type userRepo struct {
	DB *gorm.DB
}

func NewUserRepo(db *GormDB) UserRepository {
	return &userRepo{db.DB}
}

func (u *userRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		log.Println("CreateUser error: user is nil")
		return nil, errors.New("user is nil")
	}
	if err := u.DB.Create(user).Error; err != nil {
		log.Printf("CreateUser error: %v", err)
		return nil, errors.Wrap(err, "could not create user")
	}
	return user, nil
}

func (u *userRepo) IsEmailExist(email string) error {
	var count int64
	if err := u.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

// FindUserByID resolves a user row or reports the not-found sentinel; an
// absent row is never surfaced as an empty result.
func (u *userRepo) FindUserByID(id string) (*models.User, error) {
	var user models.User
	err := u.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apiError.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not find user")
	}
	return &user, nil
}

func (u *userRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := u.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apiError.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not find user")
	}
	return &user, nil
}

func (u *userRepo) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := u.DB.Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "could not list users")
	}
	if len(users) == 0 {
		return nil, apiError.ErrNotFound
	}
	return users, nil
}

func (u *userRepo) UpdateUser(user *models.User) error {
	if err := u.DB.Save(user).Error; err != nil {
		return errors.Wrap(err, "could not update user")
	}
	return nil
}

func (u *userRepo) ResetPassword(userID, newPassword string) error {
	result := u.DB.Model(&models.User{}).Where("id = ?", userID).Update("hashed_password", newPassword)
	if result.Error != nil {
		return errors.Wrap(result.Error, "could not reset password")
	}
	if result.RowsAffected == 0 {
		return apiError.ErrNotFound
	}
	return nil
}

func (u *userRepo) AddToBlackList(blacklist *models.Blacklist) error {
	if err := u.DB.Create(blacklist).Error; err != nil {
		return errors.Wrap(err, "could not blacklist token")
	}
	return nil
}

func (u *userRepo) TokenInBlacklist(token string) bool {
	var count int64
	if err := u.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count).Error; err != nil {
		log.Printf("TokenInBlacklist error: %v", err)
		return false
	}
	return count > 0
}
