package main

import (
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/Anjali11s/prolance/chathub"
	"github.com/Anjali11s/prolance/config"
	"github.com/Anjali11s/prolance/db"
	"github.com/Anjali11s/prolance/server"
	"github.com/Anjali11s/prolance/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gormDB := db.GetDB(conf)

	authRepo := db.NewAuthRepo(gormDB)
	chatRepo := db.NewChatRepo(gormDB)
	applicationRepo := db.NewApplicationRepo(gormDB)
	projectRepo := db.NewProjectRepo(gormDB)

	authService := services.NewAuthService(authRepo, conf)
	chatService := services.NewChatService(chatRepo, authRepo)
	notificationService := services.NewNotificationService(chatRepo, applicationRepo)

	hub := chathub.NewHub(chatService, authRepo)

	if conf.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     conf.RedisAddr,
			Password: conf.RedisPassword,
		})
		hub.SetBridge(chathub.NewBridge(rdb))
	}

	if conf.GoogleApplicationCredentials != "" {
		pushService, err := services.NewPushService(conf.GoogleApplicationCredentials, authRepo)
		if err != nil {
			log.Printf("push notifications disabled: %v", err)
		} else {
			hub.SetPusher(pushService)
		}
	}

	s := &server.Server{
		Config:                conf,
		AuthRepository:        authRepo,
		AuthService:           authService,
		ChatService:           chatService,
		NotificationService:   notificationService,
		ApplicationRepository: applicationRepo,
		ProjectRepository:     projectRepo,
		Hub:                   hub,
	}
	s.Start()
}
