package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clemauthority/socialnet/config"
	"github.com/clemauthority/socialnet/db"
	"github.com/clemauthority/socialnet/mailingservices"
	"github.com/clemauthority/socialnet/services"
)

// Server wires the repositories and services behind the HTTP surface.
type Server struct {
	Config         *config.Config
	Mail           *mailingservices.Mailgun
	UserRepository db.UserRepository
	ChatRepository db.ChatRepository
	AuthService    services.AuthService
	UserService    services.UserService
	ChatService    services.ChatService
	MediaService   services.MediaService
	DB             *db.GormDB
}

func (s *Server) Start() {
	r := s.setupRouter()

	port := s.Config.Port
	if port == 0 {
		port = 8080
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Printf("Server started on :%d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
