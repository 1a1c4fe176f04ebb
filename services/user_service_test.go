package services

import (
	"net/http"
	"testing"

	"github.com/clemauthority/socialnet/config"
)

func TestGetUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.seedUser("u1", "u1@example.com", "Ada", "Obi")
	svc := NewUserService(userRepo, &config.Config{})

	user, apiErr := svc.GetUser("u1")
	if apiErr != nil {
		t.Fatalf("GetUser() error: %v", apiErr)
	}
	if user.Email != "u1@example.com" || user.FirstName != "Ada" {
		t.Errorf("GetUser() = %+v, want u1's sanitized profile", user)
	}

	_, apiErr = svc.GetUser("nope")
	if apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Errorf("GetUser(nope) = %v, want 404", apiErr)
	}
}

func TestGetUserByEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.seedUser("u1", "u1@example.com", "Ada", "Obi")
	svc := NewUserService(userRepo, &config.Config{})

	user, apiErr := svc.GetUserByEmail("u1@example.com")
	if apiErr != nil {
		t.Fatalf("GetUserByEmail() error: %v", apiErr)
	}
	if user.ID != "u1" {
		t.Errorf("GetUserByEmail() id = %s, want u1", user.ID)
	}

	_, apiErr = svc.GetUserByEmail("nobody@example.com")
	if apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Errorf("GetUserByEmail(unknown) = %v, want 404", apiErr)
	}
}

func TestGetAllUsers(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, &config.Config{})

	_, apiErr := svc.GetAllUsers()
	if apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Errorf("GetAllUsers() on empty storage = %v, want 404", apiErr)
	}

	userRepo.seedUser("u1", "u1@example.com", "Ada", "Obi")
	userRepo.seedUser("u2", "u2@example.com", "Ben", "Eze")

	users, apiErr := svc.GetAllUsers()
	if apiErr != nil {
		t.Fatalf("GetAllUsers() error: %v", apiErr)
	}
	if len(users) != 2 {
		t.Errorf("GetAllUsers() = %d users, want 2", len(users))
	}
}
