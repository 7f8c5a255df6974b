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

	"github.com/Anjali11s/prolance/chathub"
	"github.com/Anjali11s/prolance/config"
	"github.com/Anjali11s/prolance/db"
	"github.com/Anjali11s/prolance/services"
)

// Server carries the wired dependencies for the HTTP and websocket surface.
type Server struct {
	Config                *config.Config
	AuthRepository        db.AuthRepository
	AuthService           services.AuthService
	ChatService           services.ChatService
	NotificationService   services.NotificationService
	ApplicationRepository db.ApplicationRepository
	ProjectRepository     db.ProjectRepository
	Hub                   *chathub.Hub
}

// Start runs the hub and serves HTTP until interrupted.
func (s *Server) Start() {
	go s.Hub.Run()

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
		log.Printf("Server is running on http://localhost:%d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
