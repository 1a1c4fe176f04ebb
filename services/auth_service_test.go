package services

import (
	"net/http"
	"testing"

	"github.com/clemauthority/socialnet/config"
	"github.com/clemauthority/socialnet/models"
	"golang.org/x/crypto/bcrypt"
)

func newAuthServiceForTest() (AuthService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, &config.Config{JWTSecret: "test-secret"})
	return svc, userRepo
}

func TestSignupUser(t *testing.T) {
	svc, userRepo := newAuthServiceForTest()

	user := &models.User{
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Obi",
		Password:  "sup3rsecret",
	}
	created, apiErr := svc.SignupUser(user)
	if apiErr != nil {
		t.Fatalf("SignupUser() error: %v", apiErr)
	}
	if created.Email != "ada@example.com" {
		t.Errorf("SignupUser() email = %s, want ada@example.com", created.Email)
	}

	stored, err := userRepo.FindUserByEmail("ada@example.com")
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	if stored.Password != "" {
		t.Error("plain password was kept on the stored user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("sup3rsecret")); err != nil {
		t.Errorf("stored hash does not match the signup password: %v", err)
	}
}

func TestSignupUser_Validation(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	tests := []struct {
		name string
		user *models.User
	}{
		{"nil user", nil},
		{"missing email", &models.User{Password: "sup3rsecret"}},
		{"missing password", &models.User{Email: "ada@example.com"}},
		{"short password", &models.User{Email: "ada@example.com", Password: "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, apiErr := svc.SignupUser(tt.user)
			if apiErr == nil {
				t.Fatal("SignupUser() expected validation error")
			}
			if apiErr.Status != http.StatusBadRequest {
				t.Errorf("SignupUser() status = %d, want 400", apiErr.Status)
			}
		})
	}
}

func TestSignupUser_DuplicateEmail(t *testing.T) {
	svc, userRepo := newAuthServiceForTest()
	userRepo.seedUser("u1", "ada@example.com", "Ada", "Obi")

	_, apiErr := svc.SignupUser(&models.User{Email: "ada@example.com", Password: "sup3rsecret"})
	if apiErr == nil {
		t.Fatal("SignupUser() expected duplicate email error")
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("SignupUser() status = %d, want 400", apiErr.Status)
	}
}

func TestLoginUser(t *testing.T) {
	svc, userRepo := newAuthServiceForTest()

	hash, err := bcrypt.GenerateFromPassword([]byte("sup3rsecret"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}
	user := userRepo.seedUser("u1", "ada@example.com", "Ada", "Obi")
	user.HashedPassword = string(hash)

	resp, apiErr := svc.LoginUser(&models.LoginRequest{Email: "ada@example.com", Password: "sup3rsecret"})
	if apiErr != nil {
		t.Fatalf("LoginUser() error: %v", apiErr)
	}
	if resp.AccessToken == "" {
		t.Error("LoginUser() returned empty access token")
	}
	if resp.ID != "u1" {
		t.Errorf("LoginUser() user id = %s, want u1", resp.ID)
	}

	tests := []struct {
		name string
		req  *models.LoginRequest
	}{
		{"wrong password", &models.LoginRequest{Email: "ada@example.com", Password: "wrong"}},
		{"unknown email", &models.LoginRequest{Email: "nobody@example.com", Password: "sup3rsecret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, apiErr := svc.LoginUser(tt.req)
			if apiErr == nil || apiErr.Status != http.StatusUnauthorized {
				t.Errorf("LoginUser() = %v, want 401", apiErr)
			}
		})
	}
}

func TestGoogleLoginUser_CreatesMissingUser(t *testing.T) {
	svc, userRepo := newAuthServiceForTest()

	resp, apiErr := svc.GoogleLoginUser(&models.GoogleAuthResponse{
		Email:      "ada@example.com",
		GivenName:  "Ada",
		FamilyName: "Obi",
		Picture:    "https://example.com/pic.jpg",
	})
	if apiErr != nil {
		t.Fatalf("GoogleLoginUser() error: %v", apiErr)
	}
	if resp.AccessToken == "" {
		t.Error("GoogleLoginUser() returned empty access token")
	}

	stored, err := userRepo.FindUserByEmail("ada@example.com")
	if err != nil {
		t.Fatalf("social user was not created: %v", err)
	}
	if !stored.IsSocial {
		t.Error("social user not flagged IsSocial")
	}

	// second login reuses the row
	again, apiErr := svc.GoogleLoginUser(&models.GoogleAuthResponse{Email: "ada@example.com"})
	if apiErr != nil {
		t.Fatalf("GoogleLoginUser() second call error: %v", apiErr)
	}
	if again.ID != resp.ID {
		t.Errorf("GoogleLoginUser() second id = %s, want %s", again.ID, resp.ID)
	}
}

func TestLogoutUser_BlacklistsToken(t *testing.T) {
	svc, userRepo := newAuthServiceForTest()

	if apiErr := svc.LogoutUser("ada@example.com", "some-token"); apiErr != nil {
		t.Fatalf("LogoutUser() error: %v", apiErr)
	}
	if !userRepo.TokenInBlacklist("some-token") {
		t.Error("LogoutUser() did not blacklist the token")
	}
}

func TestResetPassword(t *testing.T) {
	svc, userRepo := newAuthServiceForTest()
	userRepo.seedUser("u1", "ada@example.com", "Ada", "Obi")

	if apiErr := svc.ResetPassword("u1", "n3wsecret"); apiErr != nil {
		t.Fatalf("ResetPassword() error: %v", apiErr)
	}
	stored := userRepo.users["u1"]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("n3wsecret")); err != nil {
		t.Errorf("stored hash does not match the new password: %v", err)
	}

	if apiErr := svc.ResetPassword("nope", "n3wsecret"); apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Errorf("ResetPassword(nope) = %v, want 404", apiErr)
	}
}
