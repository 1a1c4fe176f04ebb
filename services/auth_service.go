package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/clemauthority/socialnet/config"
	"github.com/clemauthority/socialnet/db"
	apiError "github.com/clemauthority/socialnet/errors"
	"github.com/clemauthority/socialnet/models"
	"github.com/clemauthority/socialnet/services/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthService is request-layer glue around user credentials: signup, login,
// social login, logout and password reset. The chat core never calls it.
type AuthService interface {
	SignupUser(user *models.User) (*models.UserResponse, *apiError.Error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	GoogleLoginUser(userData *models.GoogleAuthResponse) (*models.LoginResponse, *apiError.Error)
	LogoutUser(email, accessToken string) *apiError.Error
	ResetPassword(userID, newPassword string) *apiError.Error
}

type authService struct {
	Config   *config.Config
	userRepo db.UserRepository
}

func NewAuthService(userRepo db.UserRepository, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		userRepo: userRepo,
	}
}

func (a *authService) SignupUser(user *models.User) (*models.UserResponse, *apiError.Error) {
	if user == nil || user.Email == "" || user.Password == "" {
		return nil, apiError.New("Missing email or password!", http.StatusBadRequest)
	}

	if err := models.ValidatePassword(user.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	if err := a.userRepo.IsEmailExist(user.Email); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	user.HashedPassword = string(hashedPassword)
	user.Password = "" // clear the plain password

	created, err := a.userRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return created.Sanitize(), nil
}

func (a *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	user, err := a.userRepo.FindUserByEmail(loginRequest.Email)
	if errors.Is(err, apiError.ErrNotFound) {
		return nil, apiError.New("Bad username or password!", http.StatusUnauthorized)
	}
	if err != nil {
		log.Printf("LoginUser error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := user.VerifyPassword(loginRequest.Password); err != nil {
		return nil, apiError.New("Bad username or password!", http.StatusUnauthorized)
	}

	return a.buildLoginResponse(user)
}

// GoogleLoginUser gets or creates the user matching a verified Google
// profile, then mints the same access token a password login would.
func (a *authService) GoogleLoginUser(userData *models.GoogleAuthResponse) (*models.LoginResponse, *apiError.Error) {
	if userData == nil || userData.Email == "" {
		return nil, apiError.New("Invalid user data: email missing", http.StatusBadRequest)
	}

	user, err := a.userRepo.FindUserByEmail(userData.Email)
	if errors.Is(err, apiError.ErrNotFound) {
		user = &models.User{
			Email:      userData.Email,
			FirstName:  userData.GivenName,
			LastName:   userData.FamilyName,
			ProfilePic: userData.Picture,
			IsSocial:   true,
		}
		if user, err = a.userRepo.CreateUser(user); err != nil {
			log.Printf("GoogleLoginUser error creating user: %v", err)
			return nil, apiError.ErrInternalServerError
		}
	} else if err != nil {
		log.Printf("GoogleLoginUser error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return a.buildLoginResponse(user)
}

func (a *authService) LogoutUser(email, accessToken string) *apiError.Error {
	blacklist := &models.Blacklist{
		Email: email,
		Token: accessToken,
	}
	if err := a.userRepo.AddToBlackList(blacklist); err != nil {
		log.Printf("LogoutUser error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (a *authService) ResetPassword(userID, newPassword string) *apiError.Error {
	if err := models.ValidatePassword(newPassword); err != nil {
		return apiError.New(err.Error(), http.StatusBadRequest)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("ResetPassword error hashing password: %v", err)
		return apiError.ErrInternalServerError
	}

	err = a.userRepo.ResetPassword(userID, string(hashedPassword))
	if errors.Is(err, apiError.ErrNotFound) {
		return apiError.New("User not found", http.StatusNotFound)
	}
	if err != nil {
		log.Printf("ResetPassword error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (a *authService) buildLoginResponse(user *models.User) (*models.LoginResponse, *apiError.Error) {
	accessToken, err := jwt.GenerateToken(user.ID, user.Email, a.Config.JWTSecret)
	if err != nil {
		log.Printf("error generating access token: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return &models.LoginResponse{
		UserResponse: *user.Sanitize(),
		AccessToken:  accessToken,
	}, nil
}
