package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	jwtlib "github.com/golang-jwt/jwt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	errs "github.com/clemauthority/socialnet/errors"
	"github.com/clemauthority/socialnet/models"
	"github.com/clemauthority/socialnet/server/response"
	"github.com/clemauthority/socialnet/services/jwt"
)

// decode binds a JSON body or reports a 400.
func decode(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return errs.New("unable to bind request body: "+err.Error(), http.StatusBadRequest)
	}
	return nil
}

// handleSignup accepts multipart form data so the optional profile picture
// rides along with the credentials.
func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := models.User{
			Email:     c.PostForm("email"),
			FirstName: c.PostForm("first_name"),
			LastName:  c.PostForm("last_name"),
			Password:  c.PostForm("password"),
		}

		if validationErrs := models.ValidateStruct(&user); len(validationErrs) > 0 {
			response.JSON(c, "", http.StatusBadRequest, nil, fmt.Errorf("%v", validationErrs))
			return
		}

		if picFile, err := c.FormFile("profile_pic"); err == nil && picFile != nil {
			picURL, err := s.MediaService.UploadImageFile(picFile, "profile_pics")
			if err != nil {
				response.JSON(c, "", http.StatusBadRequest, nil, err)
				return
			}
			user.ProfilePic = picURL
		}

		userResponse, apiErr := s.AuthService.SignupUser(&user)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "The user has been created successfully", http.StatusCreated, userResponse, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		loginResponse, apiErr := s.AuthService.LoginUser(&loginRequest)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, accessToken, apiErr := getValuesFromContext(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		if apiErr := s.AuthService.LogoutUser(user.Email, accessToken); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _, apiErr := getValuesFromContext(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "User profile retrieved successfully", http.StatusOK, user.Sanitize(), nil)
	}
}

func getValuesFromContext(c *gin.Context) (*models.User, string, *errs.Error) {
	userValue, exists := c.Get("user")
	if !exists {
		return nil, "", errs.New("forbidden", http.StatusForbidden)
	}
	user, ok := userValue.(*models.User)
	if !ok {
		return nil, "", errs.New("internal server error", http.StatusInternalServerError)
	}
	accessToken := c.GetString("access_token")
	return user, accessToken, nil
}

func (s *Server) googleOauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.Config.GoogleClientID,
		ClientSecret: s.Config.GoogleClientSecret,
		RedirectURL:  s.Config.GoogleRedirectURL,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
	}
}

func (s *Server) HandleGoogleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := generateJWTState(s.Config.JWTSecret)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.New("Failed to generate state", http.StatusInternalServerError))
			return
		}
		authURL := s.googleOauthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline)
		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

func (s *Server) HandleGoogleCallback() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := c.Query("state")
		code := c.Query("code")

		if !verifyJWTState(state, s.Config.JWTSecret) {
			response.JSON(c, "", http.StatusForbidden, nil, errs.New("Invalid or expired state", http.StatusForbidden))
			return
		}

		conf := s.googleOauthConfig()
		token, err := conf.Exchange(c.Request.Context(), code)
		if err != nil {
			log.Printf("Token exchange failed: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.New("Token exchange failed", http.StatusInternalServerError))
			return
		}

		oauthService, err := goauth.NewService(c.Request.Context(),
			option.WithTokenSource(conf.TokenSource(c.Request.Context(), token)))
		if err != nil {
			log.Printf("Failed to build oauth service: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.New("Failed to fetch user information", http.StatusInternalServerError))
			return
		}
		userinfo, err := oauthService.Userinfo.Get().Do()
		if err != nil {
			log.Printf("Failed to fetch user information: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.New("Failed to fetch user information", http.StatusInternalServerError))
			return
		}

		loginResponse, apiErr := s.AuthService.GoogleLoginUser(&models.GoogleAuthResponse{
			ID:         userinfo.Id,
			Email:      userinfo.Email,
			Name:       userinfo.Name,
			GivenName:  userinfo.GivenName,
			FamilyName: userinfo.FamilyName,
			Picture:    userinfo.Picture,
		})
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

func generateJWTState(secret string) (string, error) {
	claims := jwtlib.MapClaims{
		"state": true,
		"exp":   time.Now().Add(time.Minute * 10).Unix(),
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func verifyJWTState(state, secret string) bool {
	if state == "" {
		return false
	}
	_, err := jwt.ValidateAndGetClaims(state, secret)
	return err == nil
}

func (s *Server) HandleForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var forgotPassword models.ForgotPassword
		if err := decode(c, &forgotPassword); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		user, err := s.UserRepository.FindUserByEmail(forgotPassword.Email)
		if err != nil || user == nil {
			response.JSON(c, "", http.StatusNotFound, nil, errs.New("user not found", http.StatusNotFound))
			return
		}

		resetToken, err := jwt.GeneratePasswordResetToken(user.ID, s.Config.JWTSecret)
		if err != nil {
			response.JSON(c, "failed to generate reset token", http.StatusInternalServerError, nil, err)
			return
		}

		resetLink := fmt.Sprintf("%s/reset-password/%s", s.Config.BaseUrl, resetToken)
		if _, err := s.Mail.SendResetPassword(user.Email, resetLink); err != nil {
			response.JSON(c, "connection to mail service interrupted", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "Reset Password Link Sent Successfully", http.StatusOK, nil, nil)
	}
}

func (s *Server) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var resetPassword models.ResetPassword
		if err := decode(c, &resetPassword); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if resetPassword.Password != resetPassword.ConfirmPassword {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("passwords do not match", http.StatusBadRequest))
			return
		}

		claims, err := jwt.ValidateAndGetClaims(c.Param("token"), s.Config.JWTSecret)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("invalid or expired reset token", http.StatusUnauthorized))
			return
		}
		userID, ok := claims["id"].(string)
		if !ok || claims["reset"] != true {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("invalid reset token", http.StatusUnauthorized))
			return
		}

		if apiErr := s.AuthService.ResetPassword(userID, resetPassword.Password); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Password reset successful", http.StatusOK, nil, nil)
	}
}
