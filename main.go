package main

import (
	"log"

	"github.com/clemauthority/socialnet/config"
	"github.com/clemauthority/socialnet/db"
	"github.com/clemauthority/socialnet/mailingservices"
	"github.com/clemauthority/socialnet/server"
	"github.com/clemauthority/socialnet/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init()

	gormDB := db.GetDB(conf)
	userRepo := db.NewUserRepo(gormDB)
	chatRepo := db.NewChatRepo(gormDB)

	authService := services.NewAuthService(userRepo, conf)
	userService := services.NewUserService(userRepo, conf)
	chatService := services.NewChatService(chatRepo, userRepo, conf)
	mediaService := services.NewMediaService(conf)

	s := &server.Server{
		Config:         conf,
		Mail:           mailgunClient,
		UserRepository: userRepo,
		ChatRepository: chatRepo,
		AuthService:    authService,
		UserService:    userService,
		ChatService:    chatService,
		MediaService:   mediaService,
		DB:             gormDB,
	}

	s.Start()
}
